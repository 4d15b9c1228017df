package activity

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecentNewestFirst(t *testing.T) {
	l := New(0)
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	l.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	l.RecordStudy("Airplane Flying Handbook")
	l.RecordChat("Magneto Operation")
	l.RecordQuiz("VFR Weather Minimums", 85, nil)

	got := l.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, Entry{Kind: KindQuiz, Label: "VFR Weather Minimums", Score: 85, At: base.Add(3 * time.Minute)}, got[0])
	assert.Equal(t, KindChat, got[1].Kind)
	assert.Equal(t, KindStudy, got[2].Kind)

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(10), 3)
}

func TestLog_Bounded(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.RecordChat(fmt.Sprintf("topic %d", i))
	}
	got := l.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, "topic 4", got[0].Label)
	assert.Equal(t, "topic 2", got[2].Label)
}

func TestLog_Stats(t *testing.T) {
	l := New(1)
	assert.Equal(t, Stats{}, l.Stats())

	l.RecordQuiz("Fundamentals", 100, []TopicResult{
		{Topic: "Weather", Correct: false},
		{Topic: "Aerodynamics", Correct: true},
		{Topic: "", Correct: true},
	})
	l.RecordQuiz("Fundamentals", 75, []TopicResult{
		{Topic: "Weather", Correct: false},
		{Topic: "Aerodynamics", Correct: true},
		{Topic: "Regulations", Correct: true},
		{Topic: "Regulations", Correct: false},
	})

	s := l.Stats()
	assert.Equal(t, 2, s.QuizzesCompleted, "evicted quizzes still count")
	assert.Equal(t, 88, s.AverageScore)
	assert.Equal(t, []string{"Regulations", "Weather"}, s.Weak)
	assert.Equal(t, []string{"Aerodynamics"}, s.Strong)
}

func TestLog_Concurrent(t *testing.T) {
	l := New(DefaultCapacity)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.RecordChat("vfr")
			_ = l.Recent(5)
			_ = l.Stats()
		}()
	}
	wg.Wait()
	assert.Len(t, l.Recent(0), 20)
}
