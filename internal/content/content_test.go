package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyscholar/skyscholar/internal/quiz"
	"github.com/skyscholar/skyscholar/internal/study"
)

func TestBundledQuestions(t *testing.T) {
	bank, err := Questions()
	require.NoError(t, err)

	assert.Equal(t, "Private Pilot Fundamentals", bank.Title)
	require.Len(t, bank.Questions, 5)

	correct := make([]int, len(bank.Questions))
	for i, q := range bank.Questions {
		correct[i] = q.Correct
		assert.NotEmpty(t, q.Explanation, q.ID)
		assert.NotEmpty(t, q.Topic, q.ID)
	}
	assert.Equal(t, []int{4, 1, 0, 1, 1}, correct)
	assert.Equal(t, "Torque", bank.Questions[0].Options[4])
}

func TestBundledQuestions_PerfectScore(t *testing.T) {
	bank, err := Questions()
	require.NoError(t, err)

	s, err := quiz.New(bank.Questions)
	require.NoError(t, err)
	for _, q := range bank.Questions {
		require.NoError(t, s.Select(q.Correct))
		_, err := s.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, quiz.Score{Correct: 5, Total: 5, Percentage: 100}, s.Score())
}

func TestBundledDocuments(t *testing.T) {
	docs, err := Documents()
	require.NoError(t, err)
	require.Len(t, docs, 5)

	var cats []study.Category
	for _, d := range docs {
		cats = append(cats, d.Category)
		assert.NotEmpty(t, d.Content, d.ID)
	}
	assert.Equal(t, []study.Category{
		study.CategoryPilot, study.CategoryPilot, study.CategoryMechanic,
		study.CategoryRegulations, study.CategoryPilot,
	}, cats)

	mech := study.Filter(docs, study.CategoryMechanic, "")
	require.Len(t, mech, 1)
	assert.Equal(t, "Aviation Maintenance Technician Handbook - General", mech[0].Title)

	blocks := study.Blocks(docs[1].Content)
	require.NotEmpty(t, blocks)
	assert.Equal(t, study.Block{Kind: study.BlockHeading, Level: 1, Text: "Pilot's Handbook of Aeronautical Knowledge"}, blocks[0])
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadQuestions_Override(t *testing.T) {
	path := writeFile(t, `
questions:
  - id: wx1
    question: What does METAR stand for?
    options: [Routine weather report, Forecast, NOTAM]
    correct_answer: 0
    explanation: A METAR is an aviation routine weather report.
`)
	bank, err := LoadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, "Practice Quiz", bank.Title)
	require.Len(t, bank.Questions, 1)
	assert.Equal(t, "wx1", bank.Questions[0].ID)
}

func TestLoadQuestions_Errors(t *testing.T) {
	_, err := LoadQuestions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadQuestions(writeFile(t, "questions: []\n"))
	require.ErrorContains(t, err, "empty")

	_, err = LoadQuestions(writeFile(t, `
questions:
  - id: a
    question: Q?
    options: [x, y]
    correct_answer: 5
`))
	require.ErrorContains(t, err, "out of range")

	_, err = LoadQuestions(writeFile(t, `
questions:
  - id: a
    question: Q?
    answers: [x, y]
`))
	require.ErrorContains(t, err, "answers")
}

func TestLoadCatalog_Override(t *testing.T) {
	c, err := LoadCatalog(writeFile(t, `
documents:
  - id: ac-00-6
    title: Aviation Weather
    category: pilot
    description: Weather theory for pilots
`))
	require.NoError(t, err)
	d, err := c.Find("ac-00-6")
	require.NoError(t, err)
	assert.Empty(t, d.Content)

	_, err = LoadCatalog(writeFile(t, `
documents:
  - id: x
    title: X
    category: dispatcher
`))
	require.ErrorIs(t, err, study.ErrUnknownCategory)
}
