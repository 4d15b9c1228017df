package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
)

func newTestHome(t *testing.T) (*HomeScreen, *screen.Env) {
	t.Helper()
	bank, err := content.Questions()
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	catalog, err := content.LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cfg := auth.DefaultConfig()
	cfg.Delay = 0
	env := &screen.Env{QuizBank: bank, Catalog: catalog, Activity: activity.New(10), Auth: auth.NewService(cfg)}
	return New(env), env
}

func signIn(t *testing.T, env *screen.Env, name string, role auth.Role) {
	t.Helper()
	sess, err := env.Auth.Register(context.Background(), auth.RegisterForm{
		Name: name, Email: "alex@example.com", Password: "secret", Role: role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := env.SignIn(sess); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

func selectLabel(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	for i, l := range h.Labels() {
		if l == label {
			h.menu.Selected = i
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			return cmd
		}
	}
	t.Fatalf("no %q in %v", label, h.Labels())
	return nil
}

func TestHome_GuestMenu(t *testing.T) {
	h, _ := newTestHome(t)
	want := []string{LabelChat, LabelQuiz, LabelStudy, LabelProfile, LabelSignIn, LabelQuit}
	got := h.Labels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Labels = %v, want %v", got, want)
	}
	if !strings.Contains(h.View(120, 40), "guest aviator") {
		t.Error("guests should get the guest greeting")
	}
}

func TestHome_SignedInMenu(t *testing.T) {
	h, env := newTestHome(t)
	signIn(t, env, "Alex", auth.RoleInstructor)

	labels := h.Labels()
	if labels[4] != LabelSignOut {
		t.Errorf("expected sign out once signed in, got %v", labels)
	}
	if !strings.Contains(h.View(120, 40), "Welcome back, Alex") {
		t.Error("greeting should use the learner's name")
	}

	cmd := selectLabel(t, h, LabelSignOut)
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg, got %T", cmd())
	}
	found := false
	for _, c := range batch {
		if _, ok := c().(screen.SignedOutMsg); ok {
			found = true
		}
	}
	if !found {
		t.Error("sign out should emit SignedOutMsg")
	}
}

func TestHome_MenuPushesScreens(t *testing.T) {
	for _, tt := range []struct {
		label string
		title string
	}{
		{LabelChat, "Tutor Chat"},
		{LabelQuiz, "Quiz"},
		{LabelStudy, "Study Materials"},
		{LabelProfile, "Profile"},
		{LabelSignIn, "Sign In"},
	} {
		h, _ := newTestHome(t)
		cmd := selectLabel(t, h, tt.label)
		if cmd == nil {
			t.Fatalf("%s: expected a command", tt.label)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("%s: expected PushScreenMsg, got %T", tt.label, cmd())
		}
		if push.Screen.Title() != tt.title {
			t.Errorf("%s: pushed %q, want %q", tt.label, push.Screen.Title(), tt.title)
		}
	}
}

func TestHome_StatsReflectActivity(t *testing.T) {
	h, env := newTestHome(t)
	env.Activity.RecordQuiz("Private Pilot Fundamentals", 40, []activity.TopicResult{
		{Topic: "Weather", Correct: false},
	})
	view := h.View(120, 40)
	for _, want := range []string{"1 QUIZZES", "40% AVG", "1 TO REVIEW"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestRenderBadge(t *testing.T) {
	if !strings.Contains(RenderBadge(auth.RoleInstructor), "CFI") {
		t.Error("instructor badge should say CFI")
	}
	if strings.Contains(RenderBadge(""), "PILOT") {
		t.Error("guests should not get pilot wings")
	}
}
