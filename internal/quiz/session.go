package quiz

import (
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrNoSelection is returned by Advance when no option is selected.
	// It is a user-facing warning, not a failure.
	ErrNoSelection = errors.New("no answer selected")

	// ErrOptionOutOfRange is returned by Select for an index outside the
	// current question's options.
	ErrOptionOutOfRange = errors.New("option out of range")

	// ErrSubmitted is returned by operations that are invalid once the quiz
	// has been submitted. Restart is the only way out.
	ErrSubmitted = errors.New("quiz already submitted")

	// ErrUnknownQuestion is returned for a question ID not in the bank.
	ErrUnknownQuestion = errors.New("unknown question")
)

// noSelection marks the absence of a tentative choice.
const noSelection = -1

// Session is the state of one pass through a fixed question list.
// It is owned by a single screen and is not safe for concurrent use.
type Session struct {
	questions []Question
	index     int
	selected  int
	answers   AnswerMap
	submitted bool
	expanded  string
}

// New creates a Session over the given questions. The slice is copied.
func New(questions []Question) (*Session, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &Session{
		questions: qs,
		selected:  noSelection,
		answers:   make(AnswerMap),
	}, nil
}

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based index of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question at the current index.
func (s *Session) Current() Question { return s.questions[s.index] }

// Questions returns a copy of the question list.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool { return s.index == len(s.questions)-1 }

// Submitted reports whether the quiz has reached its terminal state.
func (s *Session) Submitted() bool { return s.submitted }

// Selected returns the tentative choice for the current question.
func (s *Session) Selected() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

// Answers returns a copy of the committed answers.
func (s *Session) Answers() AnswerMap {
	return maps.Clone(s.answers)
}

// Progress returns the position of the current question as a fraction
// in [0, 1], with the first question at 0 and the last at 1.
func (s *Session) Progress() float64 {
	if len(s.questions) <= 1 {
		return 1
	}
	return float64(s.index) / float64(len(s.questions)-1)
}

// Select records a tentative choice for the current question.
func (s *Session) Select(option int) error {
	if s.submitted {
		return ErrSubmitted
	}
	if option < 0 || option >= len(s.Current().Options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, option)
	}
	s.selected = option
	return nil
}

// Advance commits the tentative choice and moves forward. On the last
// question it submits the quiz instead and reports true.
//
// Without a tentative choice it returns ErrNoSelection and leaves the
// index and the committed answers untouched.
func (s *Session) Advance() (submitted bool, err error) {
	if s.submitted {
		return false, ErrSubmitted
	}
	if s.selected == noSelection {
		return false, ErrNoSelection
	}

	s.answers[s.Current().ID] = s.selected

	if s.IsLast() {
		s.submitted = true
		return true, nil
	}

	s.index++
	s.selected = noSelection
	return false, nil
}

// Retreat moves back one question, restoring the committed choice for it
// as the tentative selection. No-op on the first question.
func (s *Session) Retreat() {
	if s.submitted || s.index == 0 {
		return
	}
	s.index--
	if a, ok := s.answers[s.Current().ID]; ok {
		s.selected = a
	} else {
		s.selected = noSelection
	}
}

// Restart clears all answers and returns to the first question.
func (s *Session) Restart() {
	s.index = 0
	s.selected = noSelection
	s.answers = make(AnswerMap)
	s.submitted = false
	s.expanded = ""
}

// ToggleExplanation expands the explanation for id in the results view,
// or collapses it if it is already the expanded one. At most one
// explanation is expanded at a time.
func (s *Session) ToggleExplanation(id string) error {
	if !s.has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if s.expanded == id {
		s.expanded = ""
	} else {
		s.expanded = id
	}
	return nil
}

// Expanded returns the ID of the expanded explanation, if any.
func (s *Session) Expanded() (string, bool) {
	return s.expanded, s.expanded != ""
}

func (s *Session) has(id string) bool {
	for _, q := range s.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
