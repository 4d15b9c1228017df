package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

// Screen is one full-page view managed by the router.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own resources or pending work.
// The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// InputCapturer is implemented by screens that are currently reading
// free text, so global single-key shortcuts must not fire.
type InputCapturer interface {
	CapturingInput() bool
}
