package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

const badgeGuest = `    __|__
--o--(_)--o--`

const badgePilot = `  ___/\___
 /  PILOT  \
 \___  ___/
     \/`

const badgeMechanic = `  ___/\___
 / A&P MECH \
 \___  ___/
     \/`

const badgeInstructor = `  ___/\___
 /   CFI   \
 \___  ___/
     \/`

// RenderBadge returns the wings badge for a role. An empty role gets the
// guest aircraft.
func RenderBadge(role auth.Role) string {
	art := badgeGuest
	var fg color.Color = theme.TextDim

	switch role {
	case auth.RoleStudentPilot:
		art, fg = badgePilot, theme.Secondary
	case auth.RoleMechanic:
		art, fg = badgeMechanic, theme.Accent
	case auth.RoleInstructor:
		art, fg = badgeInstructor, theme.Success
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

func renderBadgeBox(role auth.Role, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderBadge(role))
}
