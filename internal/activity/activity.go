// Package activity keeps the in-memory record of what the learner did
// this session. It feeds the profile screen and is never persisted.
package activity

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// DefaultCapacity bounds the log.
const DefaultCapacity = 50

// Kind classifies an Entry.
type Kind string

const (
	KindQuiz  Kind = "quiz"
	KindChat  Kind = "chat"
	KindStudy Kind = "study"
)

// Entry is one recorded activity.
type Entry struct {
	Kind  Kind
	Label string
	Score int // percentage; quiz entries only
	At    time.Time
}

// TopicResult is the outcome of one quiz question in a study area.
type TopicResult struct {
	Topic   string
	Correct bool
}

// Stats summarizes quiz performance.
type Stats struct {
	QuizzesCompleted int
	AverageScore     int

	// Weak and Strong list topics answered below 60% and at or above
	// 80%, sorted by name.
	Weak   []string
	Strong []string
}

type tally struct{ correct, total int }

// Log is a bounded, newest-first activity log. It is safe for concurrent
// use.
type Log struct {
	mu       sync.Mutex
	capacity int
	now      func() time.Time
	entries  []Entry // oldest first

	quizzes  int
	scoreSum int
	topics   map[string]tally
}

// New creates a log holding at most capacity entries. Quiz statistics
// cover every recorded quiz, including ones evicted from the log.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity, now: time.Now, topics: make(map[string]tally)}
}

// SetClock overrides time.Now.
func (l *Log) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// RecordQuiz records a finished quiz with its percentage score and the
// per-topic outcomes. Questions without a topic are skipped.
func (l *Log) RecordQuiz(title string, percentage int, results []TopicResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.quizzes++
	l.scoreSum += percentage
	for _, r := range results {
		if r.Topic == "" {
			continue
		}
		t := l.topics[r.Topic]
		t.total++
		if r.Correct {
			t.correct++
		}
		l.topics[r.Topic] = t
	}
	l.add(Entry{Kind: KindQuiz, Label: title, Score: percentage})
}

// RecordChat records a chat question.
func (l *Log) RecordChat(topic string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(Entry{Kind: KindChat, Label: topic})
}

// RecordStudy records an opened document.
func (l *Log) RecordStudy(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(Entry{Kind: KindStudy, Label: title})
}

func (l *Log) add(e Entry) {
	e.At = l.now()
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = slices.Delete(l.entries, 0, over)
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Stats returns quiz totals. AverageScore rounds half up.
func (l *Log) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{QuizzesCompleted: l.quizzes}
	if l.quizzes > 0 {
		s.AverageScore = (2*l.scoreSum + l.quizzes) / (2 * l.quizzes)
	}
	for topic, t := range l.topics {
		switch pct := t.correct * 100 / t.total; {
		case pct < 60:
			s.Weak = append(s.Weak, topic)
		case pct >= 80:
			s.Strong = append(s.Strong, topic)
		}
	}
	slices.SortFunc(s.Weak, cmp.Compare[string])
	slices.SortFunc(s.Strong, cmp.Compare[string])
	return s
}
