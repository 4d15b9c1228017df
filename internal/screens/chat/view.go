package chat

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	tutor "github.com/skyscholar/skyscholar/internal/chat"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

func (c *ChatScreen) renderMessages(width int) string {
	bubbleWidth := max(width*3/4, 30)
	msgs := c.transcript.Messages()

	var b strings.Builder
	b.WriteString("\n")
	for i, m := range msgs {
		selected := c.focus == focusMessages && i == c.cursor
		b.WriteString(renderMessage(m, bubbleWidth, width, selected))
		b.WriteString("\n\n")
	}

	if len(msgs) == 1 {
		b.WriteString(theme.Dim.Render("  Try asking:") + "\n")
		for _, s := range Suggestions {
			b.WriteString(theme.Hint.Render("    • "+s) + "\n")
		}
	}

	if c.transcript.Pending() {
		b.WriteString("  " + c.spinner.View() + theme.Dim.Render(" Sky Scholar is typing"))
	}
	return b.String()
}

func renderMessage(m tutor.Message, bubbleWidth, width int, selected bool) string {
	stamp := m.Timestamp.Format("15:04")

	if !m.FromAssistant() {
		head := theme.Dim.Render("You · " + stamp)
		body := theme.UserBubble.Width(bubbleWidth).Render(m.Content)
		block := lipgloss.JoinVertical(lipgloss.Right, head, body)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, block)
	}

	marker := "  "
	if selected {
		marker = theme.Selected.Render("▸ ")
	}
	head := marker + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("✈ Sky Scholar") +
		theme.Dim.Render(" · "+stamp)

	bubble := theme.TutorBubble
	if selected {
		bubble = bubble.Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.Primary)
	}
	lines := []string{head, "  " + strings.ReplaceAll(bubble.Width(bubbleWidth).Render(m.Content), "\n", "\n  ")}

	if len(m.Sources) > 0 {
		lines = append(lines, "  "+theme.Dim.Render("Sources:"))
		for _, s := range m.Sources {
			chip := theme.Chip.Foreground(theme.Secondary).Render("▤ " + s.Title)
			lines = append(lines, "   "+chip+theme.Dim.Render(s.Reference))
		}
	}

	lines = append(lines, "  "+renderFeedback(m.Feedback, selected))
	return strings.Join(lines, "\n")
}

func renderFeedback(f tutor.Feedback, selected bool) string {
	switch f {
	case tutor.FeedbackPositive:
		return theme.Correct.Render("▲ Helpful")
	case tutor.FeedbackNegative:
		return theme.Incorrect.Render("▼ Not helpful")
	}
	if selected {
		return theme.Hint.Render("Was this helpful? y / n")
	}
	return ""
}

func (c *ChatScreen) renderInput(width int) string {
	c.input.SetWidth(width - 8)
	status := theme.Dim.Render("Press Enter to send")
	if c.transcript.Pending() {
		status = theme.Dim.Render("Waiting for the tutor...")
	}
	focused := c.focus == focusInput && !c.transcript.Pending()
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Card.Width(width).BorderForeground(borderColor(focused)).Render(c.input.View()),
		" "+status,
	)
}

func borderColor(focused bool) color.Color {
	if focused {
		return theme.Primary
	}
	return theme.Border
}
