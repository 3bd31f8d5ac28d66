package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette. Calm, low-saturation tones; severity colors are reserved
// for results.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#A78BFA") // Lavender
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#F97316") // Orange
	Critical  = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// Chosen marks a value already recorded for the current item.
	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// TagColor maps a severity style tag ("success", "warning", "error",
// "critical") to a palette color. Unknown tags render as plain text.
func TagColor(tag string) color.Color {
	switch tag {
	case "success":
		return Success
	case "warning":
		return Warning
	case "error":
		return Error
	case "critical":
		return Critical
	default:
		return Text
	}
}

// Tagged returns a bold style in the tag's color.
func Tagged(tag string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(TagColor(tag)).Bold(true)
}
