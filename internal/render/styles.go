// Package render draws pipeline results for the terminal: the preview
// table, the four metric cards, the built-in example, and user-facing
// failures with the static format hint.
package render

import "github.com/charmbracelet/lipgloss"

// Palette shared by all terminal output.
var (
	colorPrimary = lipgloss.Color("#101F38") // dark blue
	colorAccent  = lipgloss.Color("#8BC34A") // lime green
	colorMuted   = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#dce0e5")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the styled components used by the views.
type Styles struct {
	Title       lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Muted       lipgloss.Style
	MetricValue lipgloss.Style
	MetricLabel lipgloss.Style
	MetricCard  lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Hint        lipgloss.Style
}

// DefaultStyles returns the house styling.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		TableHeader: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1),

		TableCell: lipgloss.NewStyle().
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),

		MetricValue: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),

		MetricLabel: lipgloss.NewStyle().
			Foreground(colorMuted),

		MetricCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginRight(1),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),

		Hint: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
	}
}
