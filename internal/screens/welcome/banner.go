package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗██╗   ██╗    ███████╗ ██████╗██╗  ██╗ ██████╗ ██╗      █████╗ ██████╗
 ██╔════╝██║ ██╔╝╚██╗ ██╔╝    ██╔════╝██╔════╝██║  ██║██╔═══██╗██║     ██╔══██╗██╔══██╗
 ███████╗█████╔╝  ╚████╔╝     ███████╗██║     ███████║██║   ██║██║     ███████║██████╔╝
 ╚════██║██╔═██╗   ╚██╔╝      ╚════██║██║     ██╔══██║██║   ██║██║     ██╔══██║██╔══██╗
 ███████║██║  ██╗   ██║       ███████║╚██████╗██║  ██║╚██████╔╝███████╗██║  ██║██║  ██║
 ╚══════╝╚═╝  ╚═╝   ╚═╝       ╚══════╝ ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "S K Y   S C H O L A R"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 88

// RenderBanner returns the SKY SCHOLAR banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
