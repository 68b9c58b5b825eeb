package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// modal is a huh form shown over the current screen.
type modal struct {
	title  string
	form   *huh.Form
	submit func() tea.Cmd
}

// open shows form and calls submit once it completes. Esc closes it.
func (m *Model) open(title string, form *huh.Form, submit func() tea.Cmd) tea.Cmd {
	m.modal = &modal{
		title:  title,
		form:   form.WithShowHelp(true).WithShowErrors(true).WithWidth(m.modalWidth()),
		submit: submit,
	}
	return m.modal.form.Init()
}

// confirm asks before running a destructive operation.
func (m *Model) confirm(prompt string, yes func() tea.Cmd) tea.Cmd {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Keep").
			Value(&ok),
	))
	return m.open("Confirm", form, func() tea.Cmd {
		if !ok {
			return nil
		}
		return yes()
	})
}

func (m *Model) updateModal(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.modal = nil
		return nil
	}
	form, cmd := m.modal.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.modal.form = f
	}
	switch m.modal.form.State {
	case huh.StateCompleted:
		submit := m.modal.submit
		m.modal = nil
		if submit != nil {
			return tea.Batch(cmd, submit())
		}
	case huh.StateAborted:
		m.modal = nil
	}
	return cmd
}

func (m *Model) modalWidth() int {
	w := m.width - 10
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (d *modal) view(m *Model) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(d.title),
		"",
		d.form.View(),
	)
	box := m.theme.Modal.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, box)
}

// clip shortens s to width cells, keeping ANSI sequences intact.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
