package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/willow/pkg/planner"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
	modeForgot
)

func (m loginMode) title() string {
	switch m {
	case modeRegister:
		return "Create an account"
	case modeForgot:
		return "Reset your password"
	}
	return "Welcome back"
}

// loginScreen is the only screen an unauthenticated session sees.
type loginScreen struct {
	mode loginMode
	form *huh.Form

	username string
	email    string
	password string
}

func newLoginScreen() *loginScreen {
	s := &loginScreen{}
	s.build()
	return s
}

func (s *loginScreen) build() {
	var fields []huh.Field
	if s.mode != modeForgot {
		fields = append(fields, huh.NewInput().
			Key("username").
			Title("Username").
			Value(&s.username).
			Validate(huh.ValidateNotEmpty()))
	}
	if s.mode != modeLogin {
		fields = append(fields, huh.NewInput().
			Key("email").
			Title("Email").
			Value(&s.email).
			Validate(huh.ValidateNotEmpty()))
	}
	if s.mode != modeForgot {
		fields = append(fields, huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&s.password).
			Validate(huh.ValidateNotEmpty()))
	}
	s.form = huh.NewForm(huh.NewGroup(fields...)).WithShowErrors(true)
}

func (s *loginScreen) init() tea.Cmd {
	return s.form.Init()
}

// reset clears secrets and shows a fresh form in the current mode.
func (s *loginScreen) reset() tea.Cmd {
	s.password = ""
	s.build()
	return s.form.Init()
}

func (s *loginScreen) switchTo(mode loginMode) tea.Cmd {
	s.mode = mode
	return s.reset()
}

func (s *loginScreen) update(m *Model, msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+r":
			return s.switchTo(modeRegister)
		case "ctrl+f":
			return s.switchTo(modeForgot)
		case "ctrl+l":
			return s.switchTo(modeLogin)
		case "esc":
			if s.mode != modeLogin {
				return s.switchTo(modeLogin)
			}
			return tea.Quit
		}
	}
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		return tea.Batch(cmd, s.submit(m))
	}
	return cmd
}

// submit runs the operation for the current mode with the entered values.
func (s *loginScreen) submit(m *Model) tea.Cmd {
	switch s.mode {
	case modeRegister:
		reg := planner.Registration{Username: s.username, Email: s.email, Password: s.password}
		return m.run("register", func(ctx context.Context) error {
			return m.ctrl.Register(ctx, reg)
		})
	case modeForgot:
		email := s.email
		return m.run("reset password", func(ctx context.Context) error {
			return m.ctrl.RequestPasswordReset(ctx, email)
		})
	}
	creds := planner.Credentials{Username: s.username, Password: s.password}
	return m.run("login", func(ctx context.Context) error {
		return m.ctrl.Login(ctx, creds)
	})
}

// done reacts to an operation that left the session logged out.
func (s *loginScreen) done(msg opMsg) tea.Cmd {
	switch msg.op {
	case "register", "reset password":
		if msg.err == nil {
			return s.switchTo(modeLogin)
		}
	}
	return s.reset()
}

func (s *loginScreen) view(m *Model) string {
	hint := "ctrl+r create account · ctrl+f forgot password · esc quit"
	switch s.mode {
	case modeRegister, modeForgot:
		hint = "ctrl+l back to login · esc back"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(s.mode.title()),
		"",
		s.form.View(),
		"",
		m.theme.Help.Render(hint),
	)
	box := m.theme.Panel.Width(48).Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, box)
}
