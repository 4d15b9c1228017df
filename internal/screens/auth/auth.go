package auth

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	acct "github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// Field positions. The tab strip is focus 0 in both modes.
const (
	focusTabs = iota
	focusName
	focusEmail
	focusPassword
	focusRole
	focusSubmit
)

// resultMsg carries the outcome of a login or registration.
type resultMsg struct {
	mode    mode
	session *acct.Session
	err     error
}

// AuthScreen collects login or registration details and signs the learner
// in. On success it replaces itself with the screen built by next.
type AuthScreen struct {
	env  *screen.Env
	next func() screen.Screen

	tabs     components.Tabs
	name     components.TextInput
	email    components.TextInput
	password components.TextInput
	role     int
	focus    int

	submitting bool
	spinner    spinner.Model
	ctx        context.Context
	cancel     context.CancelFunc
}

var (
	_ screen.Screen          = (*AuthScreen)(nil)
	_ screen.KeyHintProvider = (*AuthScreen)(nil)
	_ screen.Closer          = (*AuthScreen)(nil)
	_ screen.InputCapturer   = (*AuthScreen)(nil)
)

// New creates the sign-in screen. next builds the screen shown after a
// successful sign-in.
func New(env *screen.Env, next func() screen.Screen) *AuthScreen {
	ctx, cancel := context.WithCancel(context.Background())
	a := &AuthScreen{
		env:      env,
		next:     next,
		tabs:     components.NewTabs("Login", "Register"),
		name:     components.NewTextInput("Full Name", "Amelia Earhart", 80),
		email:    components.NewTextInput("Email", "you@example.com", 254),
		password: components.NewPasswordInput("Password", "••••••••"),
		focus:    focusEmail,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		ctx:      ctx,
		cancel:   cancel,
	}
	return a
}

func (a *AuthScreen) Init() tea.Cmd {
	return a.setFocus(focusEmail)
}

func (a *AuthScreen) Title() string {
	if a.mode() == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (a *AuthScreen) mode() mode {
	return mode(a.tabs.Active)
}

// CapturingInput reports whether a text field has focus.
func (a *AuthScreen) CapturingInput() bool {
	switch a.focus {
	case focusName, focusEmail, focusPassword:
		return true
	}
	return false
}

// Close abandons an in-flight sign-in.
func (a *AuthScreen) Close() {
	a.cancel()
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "Enter", Description: "Next/Submit"},
	}
	switch a.focus {
	case focusTabs:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Login/Register"})
	case focusRole:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Role"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// fields returns the focus order for the current mode.
func (a *AuthScreen) fields() []int {
	if a.mode() == modeRegister {
		return []int{focusTabs, focusName, focusEmail, focusPassword, focusRole, focusSubmit}
	}
	return []int{focusTabs, focusEmail, focusPassword, focusSubmit}
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return a, a.handleResult(msg)

	case spinner.TickMsg:
		if !a.submitting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyPressMsg:
		if a.submitting {
			return a, nil
		}
		return a, a.handleKey(msg)
	}
	return a, a.updateInput(msg)
}

func (a *AuthScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return a.step(1)
	case "shift+tab", "up":
		return a.step(-1)
	case "enter":
		if a.focus == focusSubmit || a.focus == focusPassword && a.mode() == modeLogin {
			return a.submit()
		}
		return a.step(1)
	}

	switch a.focus {
	case focusTabs:
		switch msg.String() {
		case "left", "h":
			a.tabs.Prev()
		case "right", "l":
			a.tabs.Next()
		}
		return nil
	case focusRole:
		switch msg.String() {
		case "left", "h":
			a.role = (a.role - 1 + len(acct.Roles)) % len(acct.Roles)
		case "right", "l", "space", " ":
			a.role = (a.role + 1) % len(acct.Roles)
		}
		return nil
	}
	return a.updateInput(msg)
}

// step moves focus forward or backward through the current mode's fields.
func (a *AuthScreen) step(dir int) tea.Cmd {
	order := a.fields()
	pos := 0
	for i, f := range order {
		if f == a.focus {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(order)) % len(order)
	return a.setFocus(order[pos])
}

func (a *AuthScreen) setFocus(f int) tea.Cmd {
	a.focus = f
	a.name.Blur()
	a.email.Blur()
	a.password.Blur()
	switch f {
	case focusName:
		return a.name.Focus()
	case focusEmail:
		return a.email.Focus()
	case focusPassword:
		return a.password.Focus()
	}
	return nil
}

func (a *AuthScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case focusName:
		a.name, cmd = a.name.Update(msg)
	case focusEmail:
		a.email, cmd = a.email.Update(msg)
	case focusPassword:
		a.password, cmd = a.password.Update(msg)
	}
	return cmd
}

func (a *AuthScreen) submit() tea.Cmd {
	a.name.Err, a.email.Err, a.password.Err = "", "", ""

	svc, ctx, m := a.env.Auth, a.ctx, a.mode()
	if svc == nil {
		return components.Toast("Sign-in unavailable", "", components.SeverityError)
	}

	var run func() (*acct.Session, error)
	if m == modeRegister {
		form := acct.RegisterForm{
			Name:     a.name.Value(),
			Email:    a.email.Value(),
			Password: a.password.Value(),
			Role:     acct.Roles[a.role],
		}
		if err := form.Validate(); err != nil {
			return a.showErrors(m, err)
		}
		run = func() (*acct.Session, error) { return svc.Register(ctx, form) }
	} else {
		form := acct.LoginForm{Email: a.email.Value(), Password: a.password.Value()}
		if err := form.Validate(); err != nil {
			return a.showErrors(m, err)
		}
		run = func() (*acct.Session, error) { return svc.Login(ctx, form) }
	}

	a.submitting = true
	return tea.Batch(func() tea.Msg {
		s, err := run()
		return resultMsg{mode: m, session: s, err: err}
	}, a.spinner.Tick)
}

func (a *AuthScreen) handleResult(msg resultMsg) tea.Cmd {
	a.submitting = false
	if errors.Is(msg.err, context.Canceled) {
		return nil
	}
	if msg.err != nil {
		return a.showErrors(msg.mode, msg.err)
	}

	title, detail := "Login successful", "Welcome back to Sky Scholar!"
	if msg.mode == modeRegister {
		title, detail = "Registration successful", "Welcome to Sky Scholar! Your account has been created."
	}
	session := msg.session
	cmds := []tea.Cmd{
		func() tea.Msg { return screen.SignedInMsg{Session: session} },
		components.Toast(title, detail, components.SeveritySuccess),
	}
	if a.next != nil {
		cmds = append(cmds, router.Replace(a.next()))
	}
	return tea.Batch(cmds...)
}

// showErrors puts field messages inline and raises a failure toast.
func (a *AuthScreen) showErrors(m mode, err error) tea.Cmd {
	var verr *acct.ValidationError
	if errors.As(err, &verr) {
		a.name.Err = verr.Field("name")
		a.email.Err = verr.Field("email")
		a.password.Err = verr.Field("password")
	}
	if m == modeRegister {
		return components.Toast("Registration failed", "Please check your information and try again.", components.SeverityError)
	}
	return components.Toast("Login failed", "Please check your credentials and try again.", components.SeverityError)
}
