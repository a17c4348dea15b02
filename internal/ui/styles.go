package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytask-cli/tinytask/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorBlue      = lipgloss.Color("75")  // Blue for low priority

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleDone    = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)

	// Panel style for single-task and stats views
	StylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Priority display symbols, one per level.
var prioritySymbols = map[models.Priority]string{
	models.PriorityLow:    "○",
	models.PriorityMedium: "◐",
	models.PriorityHigh:   "●",
}

// priorityStyles maps each level to its color.
var priorityStyles = map[models.Priority]lipgloss.Style{
	models.PriorityLow:    lipgloss.NewStyle().Foreground(ColorBlue),
	models.PriorityMedium: lipgloss.NewStyle().Foreground(ColorWarning),
	models.PriorityHigh:   lipgloss.NewStyle().Foreground(ColorError),
}

// PrioritySymbol returns the symbol for a priority level.
func PrioritySymbol(p models.Priority) string {
	if s, ok := prioritySymbols[p]; ok {
		return s
	}
	return "○"
}

// PriorityStyle returns the lipgloss style for a priority level.
func PriorityStyle(p models.Priority) lipgloss.Style {
	if s, ok := priorityStyles[p]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(ColorText)
}

// StatusSymbol returns the check/circle marker for a task's done state.
func StatusSymbol(done bool) string {
	if done {
		return StyleSuccess.Render("✓")
	}
	return "○"
}
