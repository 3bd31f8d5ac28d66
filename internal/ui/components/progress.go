package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pbi/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label   string
	Percent float64
	// Suffix replaces the default "NN%" text after the bar; "-" hides it.
	Suffix string
	Width  int
	// Fill overrides the filled color. Nil uses the theme.
	Fill color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := p.Suffix
	switch suffix {
	case "":
		suffix = fmt.Sprintf("%d%%", int(p.Percent*100+0.5))
	case "-":
		suffix = ""
	}
	if suffix != "" {
		suffix = "  " + suffix
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Percent + 0.5)
	filled = min(max(filled, 0), barWidth)

	fill := theme.ProgressFilled
	if p.Fill != nil {
		fill = lipgloss.NewStyle().Background(p.Fill)
	}

	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}

	return result
}
