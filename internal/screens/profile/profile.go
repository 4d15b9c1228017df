package profile

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

const (
	tabProgress = iota
	tabActivity
	tabSettings
)

// quizGoal is the number of quizzes that fills the progress bar.
const quizGoal = 20

// recentLimit is the number of activity entries listed.
const recentLimit = 10

// ProfileScreen shows the learner's progress, recent activity and
// account settings.
type ProfileScreen struct {
	env   *screen.Env
	tabs  components.Tabs
	now   func() time.Time
	login func() screen.Screen

	// Notification preferences live for the session only.
	emailNotifications bool
	weeklySummary      bool
	setting            int
}

var (
	_ screen.Screen          = (*ProfileScreen)(nil)
	_ screen.KeyHintProvider = (*ProfileScreen)(nil)
)

// New creates a profile screen. login builds the sign-in screen offered to
// guests; it may be nil.
func New(env *screen.Env, login func() screen.Screen) *ProfileScreen {
	return &ProfileScreen{
		env:                env,
		tabs:               components.NewTabs("Progress", "Recent Activity", "Settings"),
		now:                time.Now,
		login:              login,
		emailNotifications: true,
		weeklySummary:      true,
	}
}

func (p *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (p *ProfileScreen) Title() string {
	return "Profile"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	if p.tabs.Active == tabSettings {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Select"},
			layout.KeyHint{Key: "Space", Description: "Toggle"},
		)
	}
	if _, ok := p.env.User(); ok {
		hints = append(hints, layout.KeyHint{Key: "o", Description: "Sign out"})
	} else if p.login != nil {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Sign in"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "tab", "right", "l":
		p.tabs.Next()
	case "shift+tab", "left", "h":
		p.tabs.Prev()
	case "up", "k":
		p.setting = 0
	case "down", "j":
		p.setting = 1
	case "space", " ", "enter":
		if p.tabs.Active == tabSettings {
			return p, p.toggleSetting()
		}
	case "o":
		if _, ok := p.env.User(); ok {
			return p, tea.Batch(
				func() tea.Msg { return screen.SignedOutMsg{} },
				components.Toast("Signed out", "See you next flight!", components.SeverityInfo),
			)
		}
	case "s":
		if _, ok := p.env.User(); !ok && p.login != nil {
			return p, router.Push(p.login())
		}
	}
	return p, nil
}

func (p *ProfileScreen) toggleSetting() tea.Cmd {
	name := "Email notifications"
	on := false
	if p.setting == 0 {
		p.emailNotifications = !p.emailNotifications
		on = p.emailNotifications
	} else {
		name = "Weekly progress summary"
		p.weeklySummary = !p.weeklySummary
		on = p.weeklySummary
	}
	state := "off"
	if on {
		state = "on"
	}
	return components.Toast("Preferences updated", fmt.Sprintf("%s turned %s", name, state), components.SeverityInfo)
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch p.tabs.Active {
	case tabProgress:
		body = p.viewProgress(cw)
	case tabActivity:
		body = p.viewActivity(cw)
	default:
		body = p.viewSettings(cw)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		p.viewHeader(cw),
		"",
		p.tabs.View(),
		components.Panel(body, cw+4, true),
	)
	return components.Top(content, width, height)
}

func (p *ProfileScreen) viewHeader(cw int) string {
	user, ok := p.env.User()
	if !ok {
		text := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("Guest Aviator"),
			theme.Dim.Render("Progress is kept for this session only. Sign in to personalize."),
		)
		return components.Panel(lipgloss.JoinHorizontal(lipgloss.Center, avatar("?"), "  ", text), cw+4, false)
	}

	text := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(user.Name),
		theme.Dim.Render(fmt.Sprintf("%s • Joined %s", user.Role.Label(), user.Joined.Format("January 2006"))),
	)
	return components.Panel(lipgloss.JoinHorizontal(lipgloss.Center, avatar(Initials(user.Name)), "  ", text), cw+4, false)
}

func avatar(initials string) string {
	return lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.Text).
		Bold(true).
		Padding(1, 2).
		Render(initials)
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		out = append(out, []rune(strings.ToUpper(string(r[0])))...)
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func (p *ProfileScreen) stats() activity.Stats {
	if p.env.Activity == nil {
		return activity.Stats{}
	}
	return p.env.Activity.Stats()
}

func (p *ProfileScreen) viewProgress(cw int) string {
	st := p.stats()
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Study Progress") + "\n")
	b.WriteString(theme.Dim.Render("Track your learning journey") + "\n\n")

	b.WriteString(row("Quizzes Completed", fmt.Sprint(st.QuizzesCompleted), cw) + "\n")
	b.WriteString(components.NewProgressBar("", min(float64(st.QuizzesCompleted)/quizGoal, 1), false, cw).View() + "\n\n")
	b.WriteString(row("Average Quiz Score", fmt.Sprintf("%d%%", st.AverageScore), cw) + "\n")
	b.WriteString(components.NewProgressBar("", float64(st.AverageScore)/100, false, cw).View() + "\n\n")

	half := cw / 2
	weak := topicList("Areas for Improvement", st.Weak, theme.Warning, "Take a quiz to find out")
	strong := topicList("Strong Areas", st.Strong, theme.Success, "Keep practicing")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(weak),
		lipgloss.NewStyle().Width(cw-half).Render(strong),
	))
	return b.String()
}

func row(label, value string, width int) string {
	l := theme.Body.Render(label)
	v := theme.Heading.Render(value)
	gap := max(width-lipgloss.Width(l)-lipgloss.Width(v), 1)
	return l + strings.Repeat(" ", gap) + v
}

func topicList(title string, topics []string, c color.Color, empty string) string {
	lines := []string{theme.Heading.Render(title)}
	dot := lipgloss.NewStyle().Foreground(c).Render("●")
	if len(topics) == 0 {
		lines = append(lines, theme.Dim.Render(empty))
	}
	for _, t := range topics {
		lines = append(lines, dot+" "+theme.Body.Render(t))
	}
	return strings.Join(lines, "\n")
}

func (p *ProfileScreen) viewActivity(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Recent Activity") + "\n")
	b.WriteString(theme.Dim.Render("Your recent learning activities") + "\n\n")

	var entries []activity.Entry
	if p.env.Activity != nil {
		entries = p.env.Activity.Recent(recentLimit)
	}
	if len(entries) == 0 {
		b.WriteString(theme.Dim.Render("Nothing yet. Ask the tutor, take a quiz or open a study guide."))
		return b.String()
	}

	now := p.now()
	for _, e := range entries {
		var icon, text string
		switch e.Kind {
		case activity.KindQuiz:
			icon, text = "✓", "Completed Quiz: "+e.Label
		case activity.KindChat:
			icon, text = "✈", "Chat Session: "+e.Label
		default:
			icon, text = "▤", "Studied: "+e.Label
		}
		when := theme.Dim.Render(Ago(now, e.At))
		left := lipgloss.NewStyle().Foreground(theme.Secondary).Render(icon) + " " + theme.Body.Render(text)
		b.WriteString(left + strings.Repeat(" ", max(cw-lipgloss.Width(left)-lipgloss.Width(when), 1)) + when + "\n")
		if e.Kind == activity.KindQuiz {
			b.WriteString("  " + theme.Dim.Render(fmt.Sprintf("Score: %d%%", e.Score)) + "\n")
		}
	}
	return b.String()
}

// Ago formats the time elapsed between t and now, in words.
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func (p *ProfileScreen) viewSettings(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Account Settings") + "\n")
	b.WriteString(theme.Dim.Render("Manage your account preferences") + "\n\n")

	email := "Not signed in"
	if u, ok := p.env.User(); ok {
		email = u.Email
	}
	b.WriteString(theme.Heading.Render("Email Address") + "\n")
	b.WriteString(theme.Dim.Render(email) + "\n\n")

	provider := p.env.ProviderName
	if provider == "" {
		provider = "keyword"
	}
	b.WriteString(theme.Heading.Render("Tutor") + "\n")
	b.WriteString(theme.Dim.Render("Answers served by: "+provider) + "\n\n")

	b.WriteString(theme.Heading.Render("Notifications") + "\n")
	b.WriteString(checkbox("Email notifications", p.emailNotifications, p.setting == 0) + "\n")
	b.WriteString(checkbox("Weekly progress summary", p.weeklySummary, p.setting == 1) + "\n")
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

func checkbox(label string, on, selected bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	line := box + " " + label
	if selected {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}
