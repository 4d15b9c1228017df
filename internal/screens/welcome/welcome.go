package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// runwayWidth is the length of the strip the aircraft rolls along.
const runwayWidth = 40

// Tagline is shown under the banner.
const Tagline = "Ground school in your terminal"

var features = []string{
	"✈  Ask the AI tutor about regulations, weather and systems",
	"✓  Practice with knowledge-test style quizzes",
	"▤  Browse study material for pilots and mechanics",
}

type tickMsg time.Time

// WelcomeScreen is the landing page: an aircraft takes off along a runway,
// then the banner and feature list appear.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

// aircraft renders the takeoff roll: the plane moves along the runway
// during phase 1 and climbs one line per tick afterwards.
func (w *WelcomeScreen) aircraft() string {
	pos := min(int(w.elapsed*runwayWidth/phase2End), runwayWidth-1)
	climb := 0
	if w.elapsed > phase1End {
		climb = min(int((w.elapsed-phase1End)/(2*tickInterval)), 3)
	}

	lines := make([]string, 4)
	for i := range lines {
		lines[i] = strings.Repeat(" ", runwayWidth)
	}
	row := 3 - climb
	lines[row] = strings.Repeat(" ", pos) + "✈" + strings.Repeat(" ", runwayWidth-pos-1)

	plane := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Join(lines, "\n"))
	runway := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat("═", runwayWidth))
	return plane + "\n" + runway
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.aircraft()}

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline))
		sections = append(sections, "")
		for _, f := range features {
			sections = append(sections, theme.Body.Render(f))
		}
		sections = append(sections, "")
		sections = append(sections, theme.Hint.Render("press any key to get started"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
