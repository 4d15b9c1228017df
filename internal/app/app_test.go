package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/chat"
	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	chatscreen "github.com/skyscholar/skyscholar/internal/screens/chat"
	"github.com/skyscholar/skyscholar/internal/screens/welcome"
	"github.com/skyscholar/skyscholar/internal/ui/components"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestApp() AppModel {
	m, _ := newTestAppWithClock()
	return m
}

func newTestAppWithClock() (AppModel, *clock) {
	c := &clock{now: time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)}
	cfg := auth.DefaultConfig()
	cfg.Delay = 0
	env := &screen.Env{
		Activity: activity.New(10),
		Answers:  chat.NewKeywordProvider(),
		Auth:     auth.NewService(cfg, auth.WithClock(c.Now)),
	}
	m := newAppModel(env)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel), c
}

func register(t *testing.T, svc *auth.Service, name string) *auth.Session {
	t.Helper()
	s, err := svc.Register(context.Background(), auth.RegisterForm{
		Name: name, Email: "alex@example.com", Password: "secret", Role: auth.RoleStudentPilot,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return s
}

func toastText(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a toast")
	}
	msg, ok := cmd().(components.ToastMsg)
	if !ok {
		t.Fatalf("expected ToastMsg, got %T", cmd())
	}
	return msg.Text
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_StartsOnWelcome(t *testing.T) {
	m := newTestApp()
	if m.router.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", m.router.Depth())
	}
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("active = %T", m.router.Active())
	}
}

func TestApp_ToastOverlay(t *testing.T) {
	m := newTestApp()
	m, cmd := update(m, components.ToastMsg{Text: "Quiz restarted", Severity: components.SeverityInfo})
	if cmd == nil {
		t.Error("a toast should schedule its expiry")
	}
	if m.toasts.Len() != 1 {
		t.Fatalf("toasts = %d, want 1", m.toasts.Len())
	}
	if !strings.Contains(m.render(), "Quiz restarted") {
		t.Error("view should show the toast")
	}
}

func TestApp_SessionMessages(t *testing.T) {
	m := newTestApp()
	s := register(t, m.env.Auth, "Alex Thompson")

	m, _ = update(m, screen.SignedInMsg{Session: s})
	if m.env.Session != s {
		t.Fatal("SignedInMsg should set the session")
	}
	if u, ok := m.env.User(); !ok || u.Email != "alex@example.com" {
		t.Errorf("User = %+v, %v", u, ok)
	}
	if !strings.Contains(m.render(), "Alex Thompson") {
		t.Error("header should show the signed-in learner")
	}

	m, _ = update(m, screen.SignedOutMsg{})
	if m.env.Session != nil {
		t.Error("SignedOutMsg should clear the session")
	}
	if _, ok := m.env.User(); ok {
		t.Error("nobody should be signed in")
	}
}

func TestApp_RejectsForeignToken(t *testing.T) {
	m := newTestApp()
	other := auth.NewService(auth.Config{TokenTTL: time.Hour})
	s := register(t, other, "Mallory")

	m, cmd := update(m, screen.SignedInMsg{Session: s})
	if got := toastText(t, cmd); got != "Sign-in failed" {
		t.Errorf("toast = %q", got)
	}
	if m.env.Session != nil {
		t.Error("a token from another key should not sign in")
	}
	if strings.Contains(m.render(), "Mallory") {
		t.Error("header should not show an unverified name")
	}
}

func TestApp_RejectsTamperedSession(t *testing.T) {
	m := newTestApp()
	s := register(t, m.env.Auth, "Alex Thompson")
	s.User.Name = "Someone Else"

	m, _ = update(m, screen.SignedInMsg{Session: s})
	u, ok := m.env.User()
	if !ok {
		t.Fatal("a valid token should sign in")
	}
	if u.Name != "Alex Thompson" {
		t.Errorf("Name = %q, want the name from the token", u.Name)
	}
	if strings.Contains(m.render(), "Someone Else") {
		t.Error("header should use the verified user")
	}
}

func TestApp_ExpiredSessionSignsOut(t *testing.T) {
	m, c := newTestAppWithClock()
	m, _ = update(m, screen.SignedInMsg{Session: register(t, m.env.Auth, "Alex Thompson")})
	if _, ok := m.env.User(); !ok {
		t.Fatal("expected a signed-in user")
	}

	c.now = c.now.Add(auth.DefaultConfig().TokenTTL + time.Minute)
	if _, ok := m.env.User(); ok {
		t.Error("an expired token should not yield a user")
	}

	m, cmd := update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := toastText(t, cmd); got != "Session expired" {
		t.Errorf("toast = %q", got)
	}
	if m.env.Session != nil {
		t.Error("expired session should be cleared")
	}
	if strings.Contains(m.render(), "Alex Thompson") {
		t.Error("header should drop the expired learner")
	}
}

func TestApp_EscPops(t *testing.T) {
	m := newTestApp()
	m, _ = update(m, router.PushScreenMsg{Screen: chatscreen.New(m.env)})
	if m.router.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", m.router.Depth())
	}

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	m, _ = update(m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("Depth after esc = %d, want 1", m.router.Depth())
	}

	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root should do nothing")
	}
}

func TestApp_QuitKeys(t *testing.T) {
	m := newTestApp()
	m, _ = update(m, router.PushScreenMsg{Screen: chatscreen.New(m.env)})

	// The chat input has focus, so q is text.
	_, cmd := update(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if isQuit(cmd) {
		t.Error("q should not quit while typing")
	}

	_, cmd = update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if !isQuit(cmd) {
		t.Error("ctrl+c should always quit")
	}
}
