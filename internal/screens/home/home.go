package home

import (
	tea "charm.land/bubbletea/v2"

	"github.com/skyscholar/skyscholar/internal/router"
	"github.com/skyscholar/skyscholar/internal/screen"
	authscreen "github.com/skyscholar/skyscholar/internal/screens/auth"
	chatscreen "github.com/skyscholar/skyscholar/internal/screens/chat"
	"github.com/skyscholar/skyscholar/internal/screens/profile"
	quizscreen "github.com/skyscholar/skyscholar/internal/screens/quiz"
	studyscreen "github.com/skyscholar/skyscholar/internal/screens/study"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
)

// Menu labels.
const (
	LabelChat    = "Chat with Tutor"
	LabelQuiz    = "Take a Quiz"
	LabelStudy   = "Study Materials"
	LabelProfile = "My Profile"
	LabelSignIn  = "Sign In"
	LabelSignOut = "Sign Out"
	LabelQuit    = "Quit"
)

// HomeScreen is the dashboard shown after the welcome animation.
type HomeScreen struct {
	env      *screen.Env
	menu     components.Menu
	signedIn bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.refresh()
	return h
}

// refresh rebuilds the menu when the sign-in state has changed.
func (h *HomeScreen) refresh() {
	_, signedIn := h.env.User()
	if h.menu.Items != nil && signedIn == h.signedIn {
		return
	}
	h.signedIn = signedIn
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected < len(h.menu.Items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	env := h.env
	chat := func() screen.Screen { return chatscreen.New(env) }
	login := func() screen.Screen { return authscreen.New(env, chat) }

	account := components.MenuItem{
		Label:       LabelSignIn,
		Description: "Log in or create an account",
		Action:      func() tea.Cmd { return router.Push(login()) },
	}
	if h.signedIn {
		account = components.MenuItem{
			Label:       LabelSignOut,
			Description: "End this session",
			Action: func() tea.Cmd {
				return tea.Batch(
					func() tea.Msg { return screen.SignedOutMsg{} },
					components.Toast("Signed out", "See you next flight.", components.SeverityInfo),
				)
			},
		}
	}

	return []components.MenuItem{
		{
			Label:       LabelChat,
			Description: "Ask the aviation tutor anything",
			Action:      func() tea.Cmd { return router.Push(chat()) },
		},
		{
			Label:       LabelQuiz,
			Description: "Test your knowledge",
			Action: func() tea.Cmd {
				q, err := quizscreen.New(env)
				if err != nil {
					if env.Logger != nil {
						env.Logger.Error("start quiz", "error", err)
					}
					return components.Toast("Quiz unavailable", err.Error(), components.SeverityError)
				}
				return router.Push(q)
			},
		},
		{
			Label:       LabelStudy,
			Description: "Handbooks, regulations and guides",
			Action:      func() tea.Cmd { return router.Push(studyscreen.New(env)) },
		},
		{
			Label:       LabelProfile,
			Description: "Progress and settings",
			Action:      func() tea.Cmd { return router.Push(profile.New(env, login)) },
		},
		account,
		{
			Label:       LabelQuit,
			Description: "Leave Sky Scholar",
			Action:      func() tea.Cmd { return tea.Quit },
		},
	}
}

// Labels returns the current menu labels in order.
func (h *HomeScreen) Labels() []string {
	h.refresh()
	labels := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		labels[i] = it.Label
	}
	return labels
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	compact := height < 24 || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	user, signedIn := h.env.User()
	var stats dashboardStats
	if h.env.Activity != nil {
		s := h.env.Activity.Stats()
		stats = dashboardStats{quizzes: s.QuizzesCompleted, average: s.AverageScore, weak: len(s.Weak)}
	}

	var sections []string
	sections = append(sections, renderTitle(width, compact))
	if !compact {
		role := user.Role
		if !signedIn {
			role = ""
		}
		sections = append(sections, renderBadgeBox(role, cw))
	}
	sections = append(sections, renderGreeting(user.Name, signedIn, cw))
	sections = append(sections, renderStatsBar(stats, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return renderFrame(sections, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
