package study

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/screen"
	docs "github.com/skyscholar/skyscholar/internal/study"
)

func newTestStudy(t *testing.T) (*StudyScreen, *screen.Env) {
	t.Helper()
	catalog, err := content.LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	env := &screen.Env{Catalog: catalog, Activity: activity.New(10)}
	return New(env), env
}

func key(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestStudy_ListsEverythingInitially(t *testing.T) {
	s, env := newTestStudy(t)

	if s.Category() != docs.CategoryAll {
		t.Errorf("Category = %q, want all", s.Category())
	}
	if len(s.Results()) != env.Catalog.Len() {
		t.Errorf("expected %d results, got %d", env.Catalog.Len(), len(s.Results()))
	}
	if !strings.Contains(s.View(120, 40), "Select a document to view") {
		t.Error("reader should show the empty state")
	}
}

func TestStudy_CategoryTabs(t *testing.T) {
	s, _ := newTestStudy(t)

	for s.Category() != docs.CategoryMechanic {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	for _, d := range s.Results() {
		if d.Category != docs.CategoryMechanic {
			t.Errorf("unexpected %q in mechanic results", d.Title)
		}
	}
	if len(s.Results()) == 0 {
		t.Error("expected at least one mechanic document")
	}
}

func TestStudy_SearchFiltersAsYouType(t *testing.T) {
	s, _ := newTestStudy(t)

	s.Update(key('/', "/"))
	if !s.CapturingInput() {
		t.Fatal("slash should focus the search box")
	}
	for _, r := range "HANDBOOK" {
		s.Update(key(r, string(r)))
	}
	for _, d := range s.Results() {
		if !strings.Contains(strings.ToLower(d.Title+d.Description), "handbook") {
			t.Errorf("%q does not match the query", d.Title)
		}
	}

	for _, r := range "zzz" {
		s.Update(key(r, string(r)))
	}
	if len(s.Results()) != 0 {
		t.Errorf("expected no results, got %d", len(s.Results()))
	}
	if !strings.Contains(s.View(120, 40), "No materials match") {
		t.Error("empty result list should say so")
	}
}

func TestStudy_OpenRecordsActivity(t *testing.T) {
	s, env := newTestStudy(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	want := s.Results()[1]
	if s.open == nil || s.open.ID != want.ID {
		t.Fatalf("expected %q open", want.Title)
	}
	if s.focus != paneReader {
		t.Error("opening a document should focus the reader")
	}
	if !strings.Contains(s.View(120, 40), want.Title) {
		t.Error("reader should show the document title")
	}

	recent := env.Activity.Recent(1)
	if len(recent) != 1 || recent[0].Kind != activity.KindStudy || recent[0].Label != want.Title {
		t.Errorf("unexpected activity %+v", recent)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.focus != paneList {
		t.Error("left should return to the list")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Airplane Flying Handbook", 10); got != "Airplane …" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("FAR/AIM", 10); got != "FAR/AIM" {
		t.Errorf("short strings should be unchanged, got %q", got)
	}
}
