package quiz

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

func (q *QuizScreen) viewQuestion(width, height int) string {
	cw := components.ContentWidth(width)
	s := q.session
	cur := s.Current()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Title.Render(q.title),
		lipgloss.NewStyle().Width(max(cw-lipgloss.Width(q.title)-2, 1)).Align(lipgloss.Right).
			Render(theme.Dim.Render(fmt.Sprintf("Question %d/%d", s.Index()+1, s.Len()))),
	)
	progress := components.NewProgressBar("", s.Progress(), false, cw).View()

	var sections []string
	sections = append(sections, header, progress, "")
	if cur.Topic != "" {
		sections = append(sections, theme.Chip.Foreground(theme.Secondary).Render(cur.Topic))
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Bold(true).Foreground(theme.Text).Render(cur.Text),
		"",
	)

	chosen := -1
	if sel, ok := s.Selected(); ok {
		chosen = sel
	}
	options := components.OptionList{
		Options: cur.Options,
		Cursor:  q.cursor,
		Chosen:  chosen,
	}
	sections = append(sections, options.View(cw))

	next := components.NewButton("Next Question →", chosen >= 0)
	if s.IsLast() {
		next = components.NewButton("Submit Quiz", chosen >= 0)
		next.Primary = true
	}
	prev := components.NewButton("← Previous", s.Index() > 0)
	sections = append(sections, components.ButtonRow(cw-lipgloss.Width(prev.View())-lipgloss.Width(next.View()), prev, next))

	body := components.Panel(strings.Join(sections, "\n"), cw+4, true)
	return components.Top("\n"+body, width, height)
}

func (q *QuizScreen) viewResults(width, height int) string {
	cw := components.ContentWidth(width)
	score := q.session.Score()

	scoreStyle := theme.Correct
	switch {
	case score.Percentage < 60:
		scoreStyle = theme.Incorrect
	case score.Percentage < 80:
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}

	summary := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Quiz Results"),
		"",
		scoreStyle.Render(fmt.Sprintf("%d%%", score.Percentage)),
		theme.Dim.Render(fmt.Sprintf("You got %d out of %d questions correct.", score.Correct, score.Total)),
	)
	summary = lipgloss.PlaceHorizontal(cw, lipgloss.Center, summary)

	var blocks []string
	cursorLine := 0
	lines := 0
	expanded, _ := q.session.Expanded()
	for i, o := range q.session.Review() {
		if i == q.cursor {
			cursorLine = lines
		}
		block := renderOutcome(i, o.Question.Text, o.Question.Options, o.Chosen, o.Question.Correct,
			o.Question.Explanation, expanded == o.Question.ID, i == q.cursor, cw)
		blocks = append(blocks, block)
		lines += strings.Count(block, "\n")
	}

	restart := components.NewButton("Restart Quiz", true)
	restart.Primary = true
	footer := lipgloss.PlaceHorizontal(cw, lipgloss.Center, restart.View()+theme.Hint.Render("  press r"))

	summaryHeight := lipgloss.Height(summary) + 1
	footerHeight := lipgloss.Height(footer) + 1
	q.results.SetWidth(cw + 4)
	q.results.SetHeight(max(height-summaryHeight-footerHeight, 3))
	q.results.SetContent(strings.Join(blocks, ""))
	ensureVisible(&q.results, cursorLine, strings.Count(blocks[q.cursor], "\n"))

	content := lipgloss.JoinVertical(lipgloss.Left, summary, "", q.results.View(), "", footer)
	return components.Top(content, width, height)
}

// ensureVisible scrolls vp so that lines [start, start+n) are shown.
func ensureVisible(vp *viewport.Model, start, n int) {
	off := vp.YOffset()
	switch {
	case start < off:
		vp.SetYOffset(start)
	case start+n > off+vp.Height():
		vp.SetYOffset(start + n - vp.Height())
	}
}

func renderOutcome(i int, text string, options []string, chosen, correct int, explanation string, expanded, selected bool, cw int) string {
	var b strings.Builder

	marker := "  "
	if selected {
		marker = theme.Selected.Render("▸ ")
	}
	mark := theme.Correct.Render("✓")
	if chosen != correct {
		mark = theme.Incorrect.Render("✗")
	}
	title := lipgloss.NewStyle().Bold(true).Width(cw - 6).Render(fmt.Sprintf("%d. %s", i+1, text))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker+mark+" ", title) + "\n")

	list := components.OptionList{
		Options: options,
		Cursor:  -1,
		Chosen:  chosen,
		Reveal:  true,
		Correct: correct,
	}
	b.WriteString(indent(list.View(cw-4), "   "))

	toggle := "Show Explanation"
	if expanded {
		toggle = "Hide Explanation"
	}
	b.WriteString("     " + lipgloss.NewStyle().Foreground(theme.Secondary).Underline(selected).Render(toggle) + "\n")
	if expanded {
		exp := theme.Card.Width(cw - 6).Foreground(theme.TextDim).Render(explanation)
		b.WriteString(indent(exp, "     ") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
