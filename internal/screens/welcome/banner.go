package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pbi/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗
 ██╔══██╗██╔══██╗██║
 ██████╔╝██████╔╝██║
 ██╔═══╝ ██╔══██╗██║
 ██║     ██████╔╝██║
 ╚═╝     ╚═════╝ ╚═╝`

const bannerCompact = "P B I"

// RenderBanner returns the banner styled in the primary color. Terminals
// narrower than 24 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 24 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
