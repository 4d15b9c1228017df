package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestToastStack_AddAndExpire(t *testing.T) {
	var s ToastStack

	cmd := s.Update(ToastMsg{Text: "Feedback received", Severity: SeveritySuccess})
	if cmd == nil {
		t.Fatal("expected an expiry command")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if !strings.Contains(s.View(90), "Feedback received") {
		t.Error("view should contain the toast text")
	}

	s.Update(expireToastMsg{id: 1})
	if s.Len() != 0 {
		t.Errorf("Len after expiry = %d, want 0", s.Len())
	}
	if s.View(90) != "" {
		t.Error("empty stack should render nothing")
	}
}

func TestToastStack_KeepsNewest(t *testing.T) {
	var s ToastStack
	for _, text := range []string{"one", "two", "three", "four"} {
		s.Update(ToastMsg{Text: text, Severity: SeverityInfo})
	}

	got := s.Texts()
	want := []string{"two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("Texts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Texts[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Expiring an already dropped toast is harmless.
	s.Update(expireToastMsg{id: 1})
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestToastCmd(t *testing.T) {
	msg := Toast("No answer selected", "Please select an answer before proceeding.", SeverityWarning)()
	tm, ok := msg.(ToastMsg)
	if !ok {
		t.Fatalf("expected ToastMsg, got %T", msg)
	}
	if tm.Severity != SeverityWarning || tm.Text != "No answer selected" || tm.Detail == "" {
		t.Errorf("unexpected toast %+v", tm)
	}
}

func TestTabs_Wrap(t *testing.T) {
	tabs := NewTabs("Login", "Register")
	tabs.Prev()
	if tabs.Active != 1 {
		t.Errorf("Prev from 0: Active = %d, want 1", tabs.Active)
	}
	tabs.Next()
	if tabs.Active != 0 {
		t.Errorf("Next from 1: Active = %d, want 0", tabs.Active)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "Soon", Disabled: true},
		{Label: "Chat", Action: func() tea.Cmd { called = true; return nil }},
		{Label: "Off", Disabled: true},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("down past disabled: Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up past disabled: Selected = %d, want 1", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("enter should run the selected action")
	}
}

func TestOptionList_Markers(t *testing.T) {
	o := OptionList{Options: []string{"Lift", "Drag"}, Cursor: 1, Chosen: 1}
	view := o.View(60)
	if !strings.Contains(view, "● B) ") {
		t.Errorf("chosen option should be marked: %q", view)
	}
	if !strings.Contains(view, "○ A) ") {
		t.Errorf("other option should be unmarked: %q", view)
	}
}

func TestOptionLetter(t *testing.T) {
	if OptionLetter(0) != "A" || OptionLetter(4) != "E" || OptionLetter(-1) != "?" {
		t.Error("unexpected option letters")
	}
}
