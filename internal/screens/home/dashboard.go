package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/screens/welcome"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// dashboardStats is the activity summary shown under the greeting.
type dashboardStats struct {
	quizzes int
	average int
	weak    int
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle shows the block banner when the frame is wide enough for it.
func renderTitle(width int, compact bool) string {
	if compact {
		width = 0
	}
	return welcome.RenderBanner(width)
}

func renderGreeting(name string, signedIn bool, cw int) string {
	text := "Welcome, guest aviator. Sign in to keep your progress."
	if signedIn {
		text = fmt.Sprintf("Welcome back, %s. Ready for today's lesson?", name)
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s dashboardStats, cw int, compact bool) string {
	quizStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			quizStyle.Render(fmt.Sprintf("✈%d", s.quizzes)),
			scoreStyle.Render(fmt.Sprintf("◎%d%%", s.average)),
			weakText(s.weak, true, weakStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			quizStyle.Render(fmt.Sprintf("✈ %d QUIZZES", s.quizzes)),
			scoreStyle.Render(fmt.Sprintf("◎ %d%% AVG", s.average)),
			weakText(s.weak, false, weakStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func weakText(weak int, compact bool, active lipgloss.Style) string {
	if weak == 0 {
		if compact {
			return theme.Dim.Render("⚠0")
		}
		return theme.Dim.Render("⚠ NO WEAK AREAS")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚠%d", weak))
	}
	return active.Render(fmt.Sprintf("⚠ %d TO REVIEW", weak))
}

const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button with its
// description under the selected one.
func renderMenu(m components.Menu, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Secondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	var buttons []string
	for i, it := range m.Items {
		if i == m.Selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+it.Label))
		} else {
			buttons = append(buttons, normalBtn.Render(it.Label))
		}
	}
	if m.Selected >= 0 && m.Selected < len(m.Items) {
		buttons = append(buttons, theme.Hint.Render(m.Items[m.Selected].Description))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, buttons...))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(m components.Menu, cw int) string {
	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		if i == m.Selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Secondary).
				Bold(true).
				Render(" ▸ " + it.Label + " ")
		} else {
			lines[i] = theme.Body.Render("   " + it.Label)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame stacks the sections and centers them within the given dimensions.
func renderFrame(sections []string, width, height int) string {
	parts := make([]string, 0, 2*len(sections))
	for i, s := range sections {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, s)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
