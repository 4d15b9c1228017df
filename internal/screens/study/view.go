package study

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	docs "github.com/skyscholar/skyscholar/internal/study"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	listWidth := max(width/3, 28)
	readerWidth := max(width-listWidth-1, 20)

	left := s.viewList(listWidth, height)
	right := s.viewReader(readerWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (s *StudyScreen) viewList(width, height int) string {
	inner := width - 4
	s.search.SetWidth(inner - 4)

	var b strings.Builder
	b.WriteString(theme.Card.Width(inner).BorderForeground(focusColor(s.focus == paneSearch)).Render("⌕ " + s.search.View()))
	b.WriteString("\n")
	b.WriteString(s.tabs.View())
	b.WriteString("\n\n")

	if len(s.results) == 0 {
		b.WriteString(theme.Dim.Render("No materials match your search."))
	}
	for i, d := range s.results {
		title := truncate(d.Title, inner-2)
		desc := truncate(d.Description, inner-2)
		switch {
		case i == s.cursor && s.focus == paneList:
			b.WriteString(theme.Selected.Render("▸ "+title) + "\n")
		case s.open != nil && s.open.ID == d.ID:
			b.WriteString(theme.Heading.Render("  "+title) + "\n")
		default:
			b.WriteString(theme.Unselected.Render("  "+title) + "\n")
		}
		b.WriteString(theme.Dim.Render("  "+desc) + "\n\n")
	}

	return components.Panel(lipgloss.NewStyle().Height(height-2).MaxHeight(height-2).Render(b.String()), width, s.focus != paneReader)
}

func (s *StudyScreen) viewReader(width, height int) string {
	inner := width - 4
	if s.open == nil {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Border).Render("▤"),
			"",
			theme.Heading.Render("Select a document to view"),
			theme.Dim.Render("Choose from our collection of FAA study materials"),
		)
		return components.Panel(components.Center(empty, inner, height-2), width, false)
	}

	s.reader.SetWidth(inner)
	s.reader.SetHeight(max(height-2, 1))
	s.reader.SetContent(renderDocument(*s.open, inner))
	return components.Panel(s.reader.View(), width, s.focus == paneReader)
}

// renderDocument lays out a document's title, description and content blocks.
func renderDocument(d docs.Document, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(d.Title) + "\n")
	b.WriteString(theme.Chip.Foreground(theme.Secondary).Render(d.Category.Label()) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(d.Description) + "\n\n")

	wrap := lipgloss.NewStyle().Width(width)
	for _, blk := range docs.Blocks(d.Content) {
		switch blk.Kind {
		case docs.BlockHeading:
			style := theme.Heading
			if blk.Level == 1 {
				style = theme.Title
			}
			b.WriteString("\n" + style.Width(width).Render(blk.Text) + "\n\n")
		case docs.BlockBullet:
			text := wrap.Width(width - 4).Render(blk.Text)
			b.WriteString("  • " + strings.ReplaceAll(text, "\n", "\n    ") + "\n")
		case docs.BlockBlank:
			b.WriteString("\n")
		default:
			b.WriteString(theme.Body.Width(width).Render(blk.Text) + "\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func focusColor(focused bool) color.Color {
	if focused {
		return theme.Primary
	}
	return theme.Border
}
