package quiz

// Score is the result of a quiz.
type Score struct {
	Correct    int
	Total      int
	Percentage int
}

// Outcome describes one question in the results view.
type Outcome struct {
	Question Question
	Chosen   int // -1 when unanswered
	Correct  bool
}

// Score counts the questions whose committed answer matches the correct
// option. Percentage is rounded half up.
func (s *Session) Score() Score {
	correct := 0
	for _, q := range s.questions {
		if a, ok := s.answers[q.ID]; ok && a == q.Correct {
			correct++
		}
	}
	return Score{
		Correct:    correct,
		Total:      len(s.questions),
		Percentage: percentage(correct, len(s.questions)),
	}
}

// Review returns one Outcome per question, in order.
func (s *Session) Review() []Outcome {
	out := make([]Outcome, len(s.questions))
	for i, q := range s.questions {
		chosen := noSelection
		if a, ok := s.answers[q.ID]; ok {
			chosen = a
		}
		out[i] = Outcome{
			Question: q,
			Chosen:   chosen,
			Correct:  chosen == q.Correct,
		}
	}
	return out
}

// percentage returns round-half-up(100 * n / total) in integer arithmetic.
func percentage(n, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*n + total) / (2 * total)
}
