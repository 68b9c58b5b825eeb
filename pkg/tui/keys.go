package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home     key.Binding
	Planner  key.Binding
	Calendar key.Binding
	Tab      key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Enter    key.Binding
	Add      key.Binding
	AddGoal  key.Binding
	AddEvent key.Binding
	Note     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Theme    key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Home: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "home"),
	),
	Planner: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "planner"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "calendar"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next section"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("[", "p"),
		key.WithHelp("[", "previous"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("]", "n"),
		key.WithHelp("]", "next"),
	),
	Today: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "today"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add task"),
	),
	AddGoal: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "add goal"),
	),
	AddEvent: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "add event"),
	),
	Note: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "edit note"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Planner, k.Calendar, k.Add, k.Toggle, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Planner, k.Calendar, k.Tab},
		{k.Up, k.Down, k.Left, k.Right, k.PrevDay, k.NextDay, k.Today},
		{k.Add, k.AddGoal, k.AddEvent, k.Note, k.Toggle, k.Delete},
		{k.Theme, k.Refresh, k.Back, k.Help, k.Quit},
	}
}
