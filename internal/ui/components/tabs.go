package components

import (
	"strings"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// Tabs is a horizontal tab strip.
type Tabs struct {
	Labels []string
	Active int
}

// NewTabs creates a tab strip with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// Next activates the tab to the right, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active + 1) % len(t.Labels)
	}
}

// Prev activates the tab to the left, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Labels) > 0 {
		t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
	}
}

// View renders the tab strip.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}
