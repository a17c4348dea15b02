// Package timeline renders a static PNG chart comparing a projected
// completion date against the fixed end-of-January target of the same year.
package timeline

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imgWidth  = 500
	imgHeight = 100

	barYStart = 35
	barHeight = 25

	topLabelY          = 10
	dateLabelYInitial  = barYStart + barHeight + 5
	dateCollisionShift = 15
)

var (
	colorBG    = color.RGBA{255, 255, 255, 255}
	colorGreen = color.RGBA{46, 204, 113, 255}
	colorRed   = color.RGBA{231, 76, 60, 255}
	colorText  = color.RGBA{50, 50, 50, 255}
	colorLine  = color.RGBA{180, 180, 180, 255}
)

// label tracks a placed text rectangle for collision detection.
type label struct {
	x, y          int
	width, height int
	text          string
}

func (l label) collidesWith(other label, padding int) bool {
	return l.x < other.x+other.width+padding &&
		l.x+l.width+padding > other.x &&
		l.y < other.y+other.height+padding &&
		l.y+l.height+padding > other.y
}

// chart carries the drawing state for one render.
type chart struct {
	img        *image.RGBA
	face       font.Face
	fontHeight int

	start     time.Time
	totalDays int

	placedDateLabels []label
	placedTopLabels  []label
}

// Generate renders the timeline for the projected date and writes the PNG
// to w.
func Generate(projected time.Time, w io.Writer) error {
	projected = dateOnly(projected)
	target := time.Date(projected.Year(), time.January, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(projected.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	endOfScale := target
	if projected.After(target) {
		endOfScale = projected
	}
	totalDays := int(endOfScale.Sub(start).Hours() / 24)
	if totalDays == 0 {
		totalDays = 1
	}

	face := basicfont.Face7x13
	c := &chart{
		img:        image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight)),
		face:       face,
		fontHeight: face.Metrics().Ascent.Ceil() + face.Metrics().Descent.Ceil(),
		start:      start,
		totalDays:  totalDays,
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{colorBG}, image.Point{}, draw.Src)

	targetX := c.dateToX(target)
	projectedX := c.dateToX(projected)

	// Bars: green run to whichever of projected/target comes first, red
	// overshoot segment when the projection is behind.
	if !projected.After(target) {
		c.fillRect(0, barYStart, projectedX, barYStart+barHeight, colorGreen)
	} else {
		c.fillRect(0, barYStart, targetX, barYStart+barHeight, colorGreen)
		c.fillRect(targetX, barYStart, projectedX, barYStart+barHeight, colorRed)
	}

	c.drawTopLabels(targetX, projectedX)
	c.addDateLabel(target, targetX, colorLine)
	c.addDateLabel(projected, projectedX, colorText)

	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("failed to encode timeline image: %w", err)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateToX maps a date onto the horizontal pixel scale.
func (c *chart) dateToX(d time.Time) int {
	daysFromStart := int(d.Sub(c.start).Hours() / 24)
	return daysFromStart * (imgWidth - 1) / c.totalDays
}

// safeTextX centers text on x while clamping it inside the image.
func (c *chart) safeTextX(x, textWidth int) int {
	safe := x - textWidth/2
	if safe < 0 {
		safe = 0
	}
	if safe > imgWidth-textWidth {
		safe = imgWidth - textWidth
	}
	return safe
}

func (c *chart) textWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

// drawTopLabels places "Target" and "Projected", pushing the projected
// label down a line when the two would overlap.
func (c *chart) drawTopLabels(targetX, projectedX int) {
	targetText, projectedText := "Target", "Projected"

	tw := c.textWidth(targetText)
	pw := c.textWidth(projectedText)
	targetLabel := label{c.safeTextX(targetX, tw), topLabelY, tw, c.fontHeight, targetText}
	projectedLabel := label{c.safeTextX(projectedX, pw), topLabelY, pw, c.fontHeight, projectedText}

	if targetLabel.collidesWith(projectedLabel, 3) {
		projectedLabel.y = topLabelY + c.fontHeight + 2
	}

	c.drawText(targetLabel)
	c.drawText(projectedLabel)
	c.placedTopLabels = append(c.placedTopLabels, targetLabel, projectedLabel)
}

// addDateLabel drops a marker line at x and writes the date below the bar,
// shifting down past any label it would overlap.
func (c *chart) addDateLabel(d time.Time, x int, marker color.RGBA) {
	text := d.Format("Jan 02")
	tw := c.textWidth(text)

	l := label{c.safeTextX(x, tw), dateLabelYInitial, tw, c.fontHeight, text}

	for _, placed := range c.placedDateLabels {
		if l.collidesWith(placed, 5) {
			l.y = placed.y + c.fontHeight + dateCollisionShift
		}
	}
	for _, top := range c.placedTopLabels {
		if l.collidesWith(top, 5) {
			if shifted := top.y + c.fontHeight + dateCollisionShift; shifted > l.y {
				l.y = shifted
			}
		}
	}

	c.vline(x, barYStart, barYStart+barHeight+5, marker)
	c.drawText(l)
	c.placedDateLabels = append(c.placedDateLabels, l)
}

func (c *chart) drawText(l label) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{colorText},
		Face: c.face,
		// Dot sits on the baseline; the label y is the top edge.
		Dot: fixed.P(l.x, l.y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(l.text)
}

func (c *chart) fillRect(x0, y0, x1, y1 int, col color.RGBA) {
	draw.Draw(c.img, image.Rect(x0, y0, x1+1, y1+1), &image.Uniform{col}, image.Point{}, draw.Src)
}

func (c *chart) vline(x, y0, y1 int, col color.RGBA) {
	for y := y0; y <= y1 && y < imgHeight; y++ {
		if x >= 0 && x < imgWidth {
			c.img.Set(x, y, col)
		}
	}
}
