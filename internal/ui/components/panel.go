package components

import (
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// ContentWidth returns the width of the centered content column for a
// frame of the given width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded card of outer width w.
func Panel(content string, w int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	return style.Width(w).Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Top places content horizontally centered at the top of the area.
func Top(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
