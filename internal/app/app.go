package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/screens/home"
	"github.com/skyscholar/skyscholar/internal/screens/welcome"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	env    *screen.Env
	toasts *components.ToastStack
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(env *screen.Env) AppModel {
	root := welcome.New(func() screen.Screen { return home.New(env) })
	return AppModel{
		router: router.New(root),
		env:    env,
		toasts: &components.ToastStack{},
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	expired := m.expireSession()
	next, cmd := m.update(msg)
	return next, tea.Batch(expired, cmd)
}

// expireSession signs the learner out once their token stops verifying.
func (m AppModel) expireSession() tea.Cmd {
	if m.env.Session == nil {
		return nil
	}
	if _, ok := m.env.User(); ok {
		return nil
	}
	m.log("session expired")
	m.env.SignOut()
	return components.Toast("Session expired", "Please sign in again.", components.SeverityWarning)
}

func (m AppModel) log(msg string, args ...any) {
	if m.env.Logger != nil {
		m.env.Logger.Info(msg, args...)
	}
}

func (m AppModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ToastMsg:
		return m, m.toasts.Update(msg)

	case screen.SignedInMsg:
		if err := m.env.SignIn(msg.Session); err != nil {
			m.log("sign-in rejected", "error", err)
			return m, components.Toast("Sign-in failed", "Your session could not be verified.", components.SeverityError)
		}
		u, _ := m.env.User()
		m.log("signed in", "email", u.Email, "role", string(u.Role))
		return m, nil

	case screen.SignedOutMsg:
		if u, ok := m.env.User(); ok {
			m.log("signed out", "email", u.Email)
		}
		m.env.SignOut()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		case "q":
			if !m.capturing() {
				m.router.CloseAll()
				return m, tea.Quit
			}
		}
	}

	// Toast expiry messages are private to the stack; it ignores
	// everything else.
	toastCmd := m.toasts.Update(msg)
	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, toastCmd)
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	user := ""
	if u, ok := m.env.User(); ok {
		user = u.Name
	}
	header := layout.RenderHeader(title, user, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, m.toasts.View(m.width), footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(env *screen.Env) error {
	p := tea.NewProgram(newAppModel(env))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
