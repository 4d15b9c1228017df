package quiz

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/activity"
	qz "github.com/skyscholar/skyscholar/internal/quiz"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

// QuizScreen runs one practice quiz: a question view until submission,
// then a results view with per-question review.
type QuizScreen struct {
	env     *screen.Env
	title   string
	session *qz.Session

	// cursor is the highlighted option in the question view and the
	// highlighted question in the results view.
	cursor int

	results viewport.Model
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates a quiz over the environment's question bank.
func New(env *screen.Env) (*QuizScreen, error) {
	s, err := qz.New(env.QuizBank.Questions)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}
	title := env.QuizBank.Title
	if title == "" {
		title = "Practice Quiz"
	}
	return &QuizScreen{
		env:     env,
		title:   title,
		session: s,
		results: viewport.New(),
	}, nil
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

// Session exposes the quiz state for tests.
func (q *QuizScreen) Session() *qz.Session {
	return q.session
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.session.Submitted() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Question"},
			{Key: "Enter", Description: "Explanation"},
			{Key: "r", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}
	next := "Next"
	if q.session.IsLast() {
		next = "Submit"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space/1-9", Description: "Choose"},
		{Key: "Enter", Description: next},
		{Key: "←", Description: "Previous"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return q, nil
	}
	if q.session.Submitted() {
		return q, q.handleResultsKey(kmsg)
	}
	return q, q.handleQuestionKey(kmsg)
}

func (q *QuizScreen) handleQuestionKey(msg tea.KeyPressMsg) tea.Cmd {
	options := len(q.session.Current().Options)

	switch key := msg.String(); key {
	case "up", "k":
		if q.cursor > 0 {
			q.cursor--
		}
	case "down", "j":
		if q.cursor < options-1 {
			q.cursor++
		}
	case "space", " ":
		_ = q.session.Select(q.cursor)
	case "enter", "right":
		return q.advance()
	case "left", "backspace":
		q.session.Retreat()
		q.syncCursor()
	default:
		if idx, ok := optionKey(key); ok && idx < options {
			q.cursor = idx
			_ = q.session.Select(idx)
		}
	}
	return nil
}

// optionKey maps "1".."9" and "a".."i" to an option index.
func optionKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}

func (q *QuizScreen) advance() tea.Cmd {
	submitted, err := q.session.Advance()
	if errors.Is(err, qz.ErrNoSelection) {
		return components.Toast("No answer selected", "Please select an answer before proceeding.", components.SeverityWarning)
	}
	if err != nil {
		return nil
	}
	if !submitted {
		q.syncCursor()
		return nil
	}

	q.cursor = 0
	q.results.GotoTop()
	score := q.session.Score()
	q.record(score)
	return components.Toast("Quiz submitted!",
		fmt.Sprintf("Your score: %d/%d (%d%%)", score.Correct, score.Total, score.Percentage),
		components.SeveritySuccess)
}

// syncCursor puts the cursor on the tentative choice, or the first option.
func (q *QuizScreen) syncCursor() {
	if sel, ok := q.session.Selected(); ok {
		q.cursor = sel
		return
	}
	q.cursor = 0
}

func (q *QuizScreen) record(score qz.Score) {
	if q.env.Activity == nil {
		return
	}
	review := q.session.Review()
	topics := make([]activity.TopicResult, 0, len(review))
	for _, o := range review {
		if o.Question.Topic == "" {
			continue
		}
		topics = append(topics, activity.TopicResult{Topic: o.Question.Topic, Correct: o.Correct})
	}
	q.env.Activity.RecordQuiz(q.title, score.Percentage, topics)
}

func (q *QuizScreen) handleResultsKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if q.cursor > 0 {
			q.cursor--
		}
	case "down", "j":
		if q.cursor < q.session.Len()-1 {
			q.cursor++
		}
	case "enter", "space", " ", "e":
		id := q.session.Questions()[q.cursor].ID
		_ = q.session.ToggleExplanation(id)
	case "r":
		q.session.Restart()
		q.cursor = 0
		return components.Toast("Quiz restarted", "Good luck!", components.SeverityInfo)
	}
	return nil
}

func (q *QuizScreen) View(width, height int) string {
	if q.session.Submitted() {
		return q.viewResults(width, height)
	}
	return q.viewQuestion(width, height)
}
