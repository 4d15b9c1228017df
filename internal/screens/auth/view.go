package auth

import (
	"strings"

	acct "github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

const formWidth = 44

func (a *AuthScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), formWidth)
	for _, in := range []*components.TextInput{&a.name, &a.email, &a.password} {
		in.SetWidth(cw - 4)
	}

	tabs := a.tabs.View()
	if a.focus == focusTabs {
		tabs = theme.Selected.Render("▸ ") + tabs
	} else {
		tabs = "  " + tabs
	}

	heading := "Welcome back"
	sub := "Sign in to continue your training."
	if a.mode() == modeRegister {
		heading = "Join Sky Scholar"
		sub = "Create an account to track your progress."
	}

	sections := []string{
		tabs,
		"",
		theme.Title.Render(heading),
		theme.Dim.Render(sub),
		"",
	}
	if a.mode() == modeRegister {
		sections = append(sections, a.name.View(), "")
	}
	sections = append(sections, a.email.View(), "", a.password.View(), "")
	if a.mode() == modeRegister {
		sections = append(sections, a.renderRoles(), "")
	}
	sections = append(sections, a.renderSubmit())

	body := components.Panel(strings.Join(sections, "\n"), cw+4, true)
	return components.Center(body, width, height)
}

func (a *AuthScreen) renderRoles() string {
	label := theme.Dim.Render("Role")
	if a.focus == focusRole {
		label = theme.Heading.Render("Role")
	}
	parts := make([]string, len(acct.Roles))
	for i, r := range acct.Roles {
		if i == a.role {
			parts[i] = theme.Chip.Foreground(theme.Primary).Bold(true).Render("● " + r.Label())
		} else {
			parts[i] = theme.Dim.Render("○ " + r.Label())
		}
	}
	return label + "\n" + strings.Join(parts, "  ")
}

func (a *AuthScreen) renderSubmit() string {
	label := "Sign In"
	if a.mode() == modeRegister {
		label = "Create Account"
	}
	if a.submitting {
		return a.spinner.View() + theme.Dim.Render(" Please wait...")
	}
	b := components.NewButton(label, a.focus == focusSubmit)
	b.Primary = true
	return b.View()
}
