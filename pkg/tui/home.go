package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/router"
)

type homeAction int

const (
	actionPlanner homeAction = iota
	actionCalendar
	actionEmail
	actionPassword
	actionTheme
	actionLogout
)

var homeMenu = []struct {
	action homeAction
	label  string
}{
	{actionPlanner, "Open planner"},
	{actionCalendar, "Open calendar"},
	{actionEmail, "Change email"},
	{actionPassword, "Change password"},
	{actionTheme, "Toggle theme"},
	{actionLogout, "Logout"},
}

type homeScreen struct {
	cursor int
}

func (s *homeScreen) clamp() {
	if s.cursor >= len(homeMenu) {
		s.cursor = len(homeMenu) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *homeScreen) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		s.cursor--
	case key.Matches(msg, keys.Down):
		s.cursor++
	case key.Matches(msg, keys.Enter):
		return s.activate(m, homeMenu[s.cursor].action)
	}
	s.clamp()
	return nil
}

func (s *homeScreen) activate(m *Model, a homeAction) tea.Cmd {
	switch a {
	case actionPlanner:
		return m.navigate(string(router.Planner))
	case actionCalendar:
		return m.navigate(string(router.Calendar))
	case actionTheme:
		return m.toggleTheme()
	case actionLogout:
		return m.run("logout", func(context.Context) error {
			return m.ctrl.Logout()
		})
	case actionEmail:
		email := m.ctrl.Snapshot().User.Email
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("New email").Value(&email).Validate(huh.ValidateNotEmpty()),
		))
		return m.open("Change email", form, func() tea.Cmd {
			return m.run("change email", func(ctx context.Context) error {
				return m.ctrl.ChangeEmail(ctx, email)
			})
		})
	case actionPassword:
		in := &planner.PasswordChange{}
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&in.CurrentPassword),
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&in.NewPassword),
			huh.NewInput().Title("Confirm new password").EchoMode(huh.EchoModePassword).Value(&in.ReNewPassword),
		))
		return m.open("Change password", form, func() tea.Cmd {
			return m.run("change password", func(ctx context.Context) error {
				return m.ctrl.ChangePassword(ctx, *in)
			})
		})
	}
	return nil
}

func (s *homeScreen) view(m *Model, st app.State) string {
	t := m.theme
	today := planner.DateOf(m.now())
	q := planner.QuoteOfTheDay(m.now())
	done, total := planner.Progress(planner.TasksDue(st.Tasks, today))

	var b strings.Builder
	b.WriteString(t.Title.Render(fmt.Sprintf("Hello, %s!", st.User.Username)))
	b.WriteString("\n")
	b.WriteString(t.Subtle.Render(today.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	width := m.width - 8
	if width < 30 {
		width = 60
	}
	b.WriteString(t.Accent.Render(wordwrap.String("“"+q.Text+"”", width)))
	b.WriteString("\n")
	b.WriteString(t.Subtle.Render("  - " + q.Author))
	b.WriteString("\n\n")

	b.WriteString(progressBar(t, done, total, 24))
	b.WriteString(fmt.Sprintf(" %d/%d tasks done today\n", done, total))
	if p := st.User.Profile; p != nil {
		b.WriteString(t.Subtle.Render(fmt.Sprintf("Level %d · %d XP · %d day streak", p.Level, p.XP, p.CurrentStreak)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	menu := make([]string, 0, len(homeMenu))
	for i, item := range homeMenu {
		label := "  " + item.label
		if item.action == actionTheme {
			label += t.Subtle.Render(" (" + string(t.Name) + ")")
		}
		if i == s.cursor {
			menu = append(menu, t.Selected.Render("> "+item.label))
			continue
		}
		menu = append(menu, label)
	}
	b.WriteString(t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, menu...)))
	return b.String()
}

func progressBar(t Theme, done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	return t.Filled.Render(strings.Repeat("█", filled)) + t.Empty.Render(strings.Repeat("░", width-filled))
}
