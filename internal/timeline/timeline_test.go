package timeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func render(t *testing.T, projected time.Time) image.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := Generate(projected, &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	return img
}

func pixel(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestGenerateDimensions(t *testing.T) {
	img := render(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC))

	b := img.Bounds()
	if b.Dx() != imgWidth || b.Dy() != imgHeight {
		t.Errorf("image size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), imgWidth, imgHeight)
	}
}

func TestGenerateOnTrack(t *testing.T) {
	// Jan 20 is before the Jan 31 target, so the bar is green only and the
	// scale runs to the target.
	img := render(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC))

	if got := pixel(img, 5, barYStart+barHeight/2); got != colorGreen {
		t.Errorf("start of bar: got %v, want green", got)
	}
	// Past the projected marker but before the right edge: background.
	if got := pixel(img, 450, barYStart+barHeight/2); got != colorBG {
		t.Errorf("beyond projected: got %v, want background", got)
	}
	for x := 0; x < imgWidth; x++ {
		if pixel(img, x, barYStart+barHeight/2) == colorRed {
			t.Fatalf("on-track chart must not contain red, found at x=%d", x)
		}
	}
}

func TestGenerateOvershoot(t *testing.T) {
	// Mar 15 is past the target, so the scale stretches to the projection
	// and a red overshoot segment follows the green run.
	img := render(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	if got := pixel(img, 100, barYStart+barHeight/2); got != colorGreen {
		t.Errorf("before target: got %v, want green", got)
	}
	if got := pixel(img, 300, barYStart+barHeight/2); got != colorRed {
		t.Errorf("after target: got %v, want red", got)
	}
}

func TestDateToXBounds(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := &chart{start: start, totalDays: 30}

	if got := c.dateToX(start); got != 0 {
		t.Errorf("start maps to %d, want 0", got)
	}
	if got := c.dateToX(start.AddDate(0, 0, 30)); got != imgWidth-1 {
		t.Errorf("end maps to %d, want %d", got, imgWidth-1)
	}
}

func TestSafeTextXClamps(t *testing.T) {
	c := &chart{}

	if got := c.safeTextX(0, 60); got != 0 {
		t.Errorf("left clamp: got %d, want 0", got)
	}
	if got := c.safeTextX(imgWidth-1, 60); got != imgWidth-60 {
		t.Errorf("right clamp: got %d, want %d", got, imgWidth-60)
	}
	if got := c.safeTextX(250, 60); got != 220 {
		t.Errorf("centered: got %d, want 220", got)
	}
}

func TestLabelCollision(t *testing.T) {
	a := label{x: 10, y: 10, width: 40, height: 13}
	b := label{x: 45, y: 10, width: 40, height: 13}
	c := label{x: 200, y: 10, width: 40, height: 13}

	if !a.collidesWith(b, 3) {
		t.Error("overlapping labels should collide")
	}
	if a.collidesWith(c, 3) {
		t.Error("distant labels should not collide")
	}
}
