package components

import (
	"strings"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// Button is a styled, non-interactive button label. Screens own the keys
// that press it.
type Button struct {
	Label   string
	Active  bool
	Primary bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button. Inactive buttons are dimmed.
func (b Button) View() string {
	if !b.Active {
		return theme.ButtonInactive.Render(b.Label)
	}
	if b.Primary {
		return theme.ButtonActive.Background(theme.Accent).Foreground(theme.BgDark).Render(b.Label)
	}
	return theme.ButtonActive.Render(b.Label)
}

// ButtonRow renders buttons left to right separated by gap spaces.
func ButtonRow(gap int, buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, strings.Repeat(" ", max(gap, 1)))
}
