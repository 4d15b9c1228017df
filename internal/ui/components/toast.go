package components

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// Severity of a toast notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// MaxToasts is the number of toasts shown at once; older ones are dropped.
const MaxToasts = 3

// ToastMsg asks the application to show a notification.
type ToastMsg struct {
	Text     string
	Detail   string
	Severity Severity
}

// Toast returns a command that shows a notification. Detail may be empty.
func Toast(text, detail string, severity Severity) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Detail: detail, Severity: severity}
	}
}

type toast struct {
	id uint64
	ToastMsg
}

type expireToastMsg struct{ id uint64 }

// ToastStack holds the visible notifications. Each expires on its own
// after ToastDuration.
type ToastStack struct {
	toasts []toast
	next   uint64
}

// Update adds new toasts and drops expired ones.
func (s *ToastStack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ToastMsg:
		s.next++
		id := s.next
		s.toasts = append(s.toasts, toast{id: id, ToastMsg: msg})
		if len(s.toasts) > MaxToasts {
			s.toasts = s.toasts[len(s.toasts)-MaxToasts:]
		}
		return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
			return expireToastMsg{id: id}
		})

	case expireToastMsg:
		for i, t := range s.toasts {
			if t.id == msg.id {
				s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Texts returns the visible toast texts, oldest first.
func (s *ToastStack) Texts() []string {
	out := make([]string, len(s.toasts))
	for i, t := range s.toasts {
		out[i] = t.Text
	}
	return out
}

// Len returns the number of visible toasts.
func (s *ToastStack) Len() int { return len(s.toasts) }

// View renders the stack, newest at the bottom. It is empty when no toast
// is visible.
func (s *ToastStack) View(width int) string {
	if len(s.toasts) == 0 {
		return ""
	}
	w := min(max(width/3, 24), 48)
	parts := make([]string, len(s.toasts))
	for i, t := range s.toasts {
		icon := "ℹ"
		switch t.Severity {
		case SeveritySuccess:
			icon = "✓"
		case SeverityWarning:
			icon = "!"
		case SeverityError:
			icon = "✗"
		}
		body := theme.Heading.Render(icon + " " + t.Text)
		if t.Detail != "" {
			body += "\n" + theme.Dim.Render(t.Detail)
		}
		parts[i] = theme.Toast(string(t.Severity)).Width(w).Render(body)
	}
	return strings.Join(parts, "\n")
}
