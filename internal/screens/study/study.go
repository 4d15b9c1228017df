package study

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/screen"
	docs "github.com/skyscholar/skyscholar/internal/study"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

type pane int

const (
	paneList pane = iota
	paneSearch
	paneReader
)

// StudyScreen browses the document catalog: a filter column on the left
// and a reader on the right.
type StudyScreen struct {
	env        *screen.Env
	categories []docs.Category
	tabs       components.Tabs
	search     components.TextInput
	results    []docs.Document
	cursor     int
	open       *docs.Document
	reader     viewport.Model
	focus      pane
}

var (
	_ screen.Screen          = (*StudyScreen)(nil)
	_ screen.KeyHintProvider = (*StudyScreen)(nil)
	_ screen.InputCapturer   = (*StudyScreen)(nil)
)

// New creates the study browser over the environment's catalog.
func New(env *screen.Env) *StudyScreen {
	cats := env.Catalog.Categories()
	counts := env.Catalog.Counts()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = fmt.Sprintf("%s %d", c.Label(), counts[c])
	}

	s := &StudyScreen{
		env:        env,
		categories: cats,
		tabs:       components.NewTabs(labels...),
		search:     components.NewTextInput("", "Search materials...", 80),
		reader:     viewport.New(),
	}
	s.applyFilter()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	return "Study Materials"
}

// CapturingInput reports whether the search box has focus.
func (s *StudyScreen) CapturingInput() bool {
	return s.focus == paneSearch
}

// Category returns the active category filter.
func (s *StudyScreen) Category() docs.Category {
	return s.categories[s.tabs.Active]
}

// Results returns the documents currently listed.
func (s *StudyScreen) Results() []docs.Document {
	return s.results
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.focus {
	case paneSearch:
		return []layout.KeyHint{
			{Key: "Enter/↓", Description: "Results"},
			{Key: "Tab", Description: "Category"},
			{Key: "Esc", Description: "Back"},
		}
	case paneReader:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "←", Description: "List"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Read"},
		{Key: "/", Description: "Search"},
		{Key: "Tab", Description: "Category"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab":
		s.tabs.Next()
		s.applyFilter()
		return s, nil
	case "shift+tab":
		s.tabs.Prev()
		s.applyFilter()
		return s, nil
	}

	switch s.focus {
	case paneSearch:
		return s, s.updateSearch(kmsg)
	case paneReader:
		return s, s.updateReader(kmsg)
	}
	return s, s.updateList(kmsg)
}

func (s *StudyScreen) updateSearch(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down":
		s.search.Blur()
		s.focus = paneList
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.applyFilter()
	return cmd
}

func (s *StudyScreen) updateList(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		s.focus = paneSearch
		return s.search.Focus()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
	case "enter", "right", "l":
		return s.openSelected()
	}
	return nil
}

func (s *StudyScreen) updateReader(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h", "backspace":
		s.focus = paneList
		return nil
	case "up", "k":
		s.reader.ScrollUp(1)
	case "down", "j":
		s.reader.ScrollDown(1)
	case "pgup", "b":
		s.reader.PageUp()
	case "pgdown", "f", "space", " ":
		s.reader.PageDown()
	case "g", "home":
		s.reader.GotoTop()
	case "G", "end":
		s.reader.GotoBottom()
	}
	return nil
}

func (s *StudyScreen) openSelected() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return nil
	}
	doc := s.results[s.cursor]
	s.open = &doc
	s.focus = paneReader
	s.reader.GotoTop()
	if s.env.Activity != nil {
		s.env.Activity.RecordStudy(doc.Title)
	}
	return nil
}

// applyFilter recomputes the result list, keeping the cursor in range.
func (s *StudyScreen) applyFilter() {
	s.results = s.env.Catalog.Filter(s.Category(), s.search.Value())
	s.cursor = min(s.cursor, max(len(s.results)-1, 0))
}
