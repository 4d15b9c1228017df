package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// OptionList renders the answer options of one question as a radio group.
// It holds no state; the quiz session owns the selection.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen

	// Reveal colours the correct option green and a wrong choice red.
	Reveal  bool
	Correct int
}

// OptionLetter returns "A", "B", ... for option index i.
func OptionLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// View renders the options, wrapping long text to width.
func (o OptionList) View(width int) string {
	var b strings.Builder
	textWidth := max(width-8, 10)

	for i, opt := range o.Options {
		marker := "○"
		if i == o.Chosen {
			marker = "●"
		}
		prefix := "  "
		if i == o.Cursor && !o.Reveal {
			prefix = "▸ "
		}

		text := lipgloss.NewStyle().Width(textWidth).Render(opt)
		line := fmt.Sprintf("%s%s %s) ", prefix, marker, OptionLetter(i))
		indent := strings.Repeat(" ", lipgloss.Width(line))
		text = strings.ReplaceAll(text, "\n", "\n"+indent)

		style := theme.Unselected
		switch {
		case o.Reveal && i == o.Correct:
			style = theme.Correct
		case o.Reveal && i == o.Chosen:
			style = theme.Incorrect
		case o.Reveal:
			style = theme.Dim
		case i == o.Chosen || i == o.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line+text) + "\n")
	}
	return b.String()
}
