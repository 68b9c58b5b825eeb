package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/willow/pkg/store"
)

// Theme centralizes Lip Gloss styles for the planner screens.
type Theme struct {
	Name store.Theme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
	Modal    lipgloss.Style
	Help     lipgloss.Style

	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	Today   lipgloss.Style
	Weekday lipgloss.Style
	Filled  lipgloss.Style
	Empty   lipgloss.Style
}

type palette struct {
	bg, fg, accent, success, err string
}

var palettes = map[store.Theme]palette{
	store.Light: {bg: "#FAFAF7", fg: "#1F2328", accent: "#2E7D32", success: "#1B8A3A", err: "#C62828"},
	store.Dark:  {bg: "#1A1B26", fg: "#C0CAF5", accent: "#7AA2F7", success: "#2ECC71", err: "#E74C3C"},
}

// blend mixes a toward b by t in Lab space and returns a lipgloss color.
func blend(a, b string, t float64) lipgloss.Color {
	ca, err := colorful.Hex(a)
	if err != nil {
		return lipgloss.Color(a)
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return lipgloss.Color(a)
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// NewTheme builds the styles for the light or dark palette. Unknown names
// fall back to light.
func NewTheme(name store.Theme) Theme {
	p, ok := palettes[name]
	if !ok {
		name = store.Light
		p = palettes[store.Light]
	}
	fg := lipgloss.Color(p.fg)
	accent := lipgloss.Color(p.accent)
	muted := blend(p.fg, p.bg, 0.45)
	subtle := blend(p.fg, p.bg, 0.75)
	soft := blend(p.accent, p.bg, 0.7)

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtle).
		Padding(0, 1)

	return Theme{
		Name:     name,
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtle:   lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent).Background(soft),
		Done:     lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Panel:    panel,
		Focused:  panel.BorderForeground(accent),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Help: lipgloss.NewStyle().Foreground(subtle),

		Info:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.success)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.err)),

		Today:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent),
		Weekday: lipgloss.NewStyle().Bold(true).Foreground(muted),
		Filled:  lipgloss.NewStyle().Foreground(accent),
		Empty:   lipgloss.NewStyle().Foreground(subtle),
	}
}
