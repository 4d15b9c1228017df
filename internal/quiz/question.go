package quiz

import (
	"fmt"
	"strings"
)

// Question is a single multiple-choice quiz question. Questions are
// immutable once a Session has been created from them.
type Question struct {
	ID          string   `yaml:"id"`
	Text        string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Correct     int      `yaml:"correct_answer"`
	Explanation string   `yaml:"explanation"`

	// Topic is an optional study area used for progress reporting.
	Topic string `yaml:"topic,omitempty"`
}

// AnswerMap records committed choices keyed by question ID.
type AnswerMap map[string]int

// Validate checks the structural rules for a question bank.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question bank is empty")
	}

	var errs []string
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question %d has no id", i+1))
		} else if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question id: %q", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %q has no text", q.ID))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %q needs at least 2 options, has %d", q.ID, len(q.Options)))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %q correct answer %d out of range", q.ID, q.Correct))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid question bank:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
