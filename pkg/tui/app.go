// Package tui is the interactive terminal planner. Every screen renders a
// Snapshot of the app.Controller and every action is a controller operation
// run off the Bubble Tea loop; the View Router picks the screen from the
// requested path and the session state.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/router"
	"tableflip.dev/willow/pkg/store"
)

// TokenSource reports whether a token is persisted. store.Session satisfies it.
type TokenSource interface {
	Restore() (string, bool, error)
}

type Options struct {
	Controller  *app.Controller
	Preferences *store.Preferences
	// Session and Changes, when set, let the UI follow a logout or theme
	// change made by another willow process.
	Session TokenSource
	Changes <-chan store.Change
	Logger  *zap.Logger
	Now     func() time.Time
}

// opMsg reports a finished controller operation.
type opMsg struct {
	op  string
	err error
}

type dismissMsg struct {
	seq uint64
}

type changeMsg struct {
	change store.Change
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	ctrl    *app.Controller
	prefs   *store.Preferences
	session TokenSource
	changes <-chan store.Change
	log     *zap.Logger
	now     func() time.Time
	// after schedules msg once d has passed.
	after func(d time.Duration, msg tea.Msg) tea.Cmd

	width  int
	height int
	theme  Theme
	help   help.Model

	path  string
	route router.Route
	busy  int

	modal    *modal
	login    *loginScreen
	home     *homeScreen
	planner  *plannerScreen
	calendar *calendarScreen
}

func New(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:     ctx,
		ctrl:    opts.Controller,
		prefs:   opts.Preferences,
		session: opts.Session,
		changes: opts.Changes,
		log:     opts.Logger,
		now:     opts.Now,
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		help: help.New(),
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.theme = NewTheme(store.Light)
	if m.prefs != nil {
		th, err := m.prefs.Theme()
		if err != nil {
			m.log.Warn("load theme", zap.Error(err))
		}
		m.theme = NewTheme(th)
	}
	today := planner.DateOf(m.now())
	m.login = newLoginScreen()
	m.home = &homeScreen{}
	m.planner = &plannerScreen{day: today}
	m.calendar = newCalendarScreen(today)
	m.path = string(router.Landing(m.ctrl.Authenticated()))
	m.resolve()
	return m
}

// Run launches the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.notified(), m.waitForChange()}
	if m.route == router.Login {
		cmds = append(cmds, m.login.init())
	} else {
		cmds = append(cmds, m.enter(m.route))
	}
	return tea.Batch(cmds...)
}

// Route is the screen currently shown.
func (m *Model) Route() router.Route {
	return m.route
}

// Theme is the active palette.
func (m *Model) Theme() Theme {
	return m.theme
}

// resolve re-runs the router for the requested path. It reports whether the
// displayed route changed.
func (m *Model) resolve() bool {
	d := router.Resolve(m.path, m.ctrl.Authenticated())
	if d.Redirected {
		m.path = string(d.Route)
	}
	changed := d.Route != m.route
	m.route = d.Route
	if changed && d.Route == router.Login {
		m.modal = nil
	}
	return changed
}

// navigate requests path and loads whatever the resulting screen needs.
func (m *Model) navigate(path string) tea.Cmd {
	m.path = path
	m.resolve()
	return m.enter(m.route)
}

func (m *Model) enter(r router.Route) tea.Cmd {
	switch r {
	case router.Login:
		return m.login.reset()
	case router.Planner:
		return m.run("refresh planner", m.ctrl.RefreshPlanner)
	case router.Home:
		return m.run("refresh profile", m.ctrl.RefreshProfile)
	case router.Calendar:
		return m.run("refresh tasks", m.ctrl.RefreshTasks)
	}
	return nil
}

// run executes a controller operation off the update loop.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		return opMsg{op: op, err: fn(ctx)}
	}
}

// notified schedules the dismissal of the visible notification.
func (m *Model) notified() tea.Cmd {
	n, ok := m.ctrl.Notifier().Current()
	if !ok {
		return nil
	}
	return m.after(m.ctrl.Notifier().Until(n.Seq), dismissMsg{seq: n.Seq})
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{change: c}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.modal != nil {
			m.modal.form = m.modal.form.WithWidth(m.modalWidth())
		}
		return m, nil

	case opMsg:
		return m, m.finished(msg)

	case dismissMsg:
		m.ctrl.Notifier().Dismiss(msg.seq)
		return m, nil

	case changeMsg:
		return m, tea.Batch(m.externalChange(msg.change), m.waitForChange())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != nil {
			return m, m.updateModal(msg)
		}
		if m.route == router.Login {
			return m, m.login.update(m, msg)
		}
		if cmd, ok := m.globalKey(msg); ok {
			return m, cmd
		}
		return m, m.screenKey(msg)
	}

	if m.modal != nil {
		return m, m.updateModal(msg)
	}
	if m.route == router.Login {
		return m, m.login.update(m, msg)
	}
	return m, nil
}

func (m *Model) finished(msg opMsg) tea.Cmd {
	if m.busy > 0 {
		m.busy--
	}
	if msg.err != nil {
		m.log.Debug("ui operation failed", zap.String("op", msg.op), zap.Error(msg.err))
	}
	cmds := []tea.Cmd{m.notified()}
	if m.resolve() {
		cmds = append(cmds, m.enter(m.route))
	} else if m.route == router.Login {
		cmds = append(cmds, m.login.done(msg))
	}
	m.clamp()
	return tea.Batch(cmds...)
}

// externalChange follows edits another process made to the store.
func (m *Model) externalChange(c store.Change) tea.Cmd {
	switch {
	case c.IsThemeKey() && m.prefs != nil:
		th, err := m.prefs.Theme()
		if err != nil {
			m.log.Warn("reload theme", zap.Error(err))
			return nil
		}
		m.theme = NewTheme(th)
	case c.IsSessionKey() && m.session != nil:
		_, ok, err := m.session.Restore()
		if err != nil || ok || !m.ctrl.Authenticated() {
			return nil
		}
		m.log.Info("session removed by another process")
		if err := m.ctrl.Logout(); err != nil {
			m.log.Warn("logout", zap.Error(err))
		}
		if m.resolve() {
			return m.enter(m.route)
		}
	}
	return nil
}

func (m *Model) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, keys.Home):
		return m.navigate(string(router.Home)), true
	case key.Matches(msg, keys.Planner):
		return m.navigate(string(router.Planner)), true
	case key.Matches(msg, keys.Calendar):
		return m.navigate(string(router.Calendar)), true
	case key.Matches(msg, keys.Theme):
		return m.toggleTheme(), true
	case key.Matches(msg, keys.Refresh):
		return m.run("refresh", m.ctrl.Refresh), true
	}
	return nil, false
}

func (m *Model) screenKey(msg tea.KeyMsg) tea.Cmd {
	switch m.route {
	case router.Home:
		return m.home.update(m, msg)
	case router.Planner:
		return m.planner.update(m, msg)
	case router.Calendar:
		return m.calendar.update(m, msg)
	}
	return nil
}

func (m *Model) toggleTheme() tea.Cmd {
	if m.prefs == nil {
		m.theme = NewTheme(m.theme.Name.Toggle())
		return nil
	}
	th, err := m.prefs.ToggleTheme()
	if err != nil {
		m.log.Warn("toggle theme", zap.Error(err))
		m.ctrl.Notifier().Show(notify.Error, "Could not save the theme.")
		return m.notified()
	}
	m.theme = NewTheme(th)
	return nil
}

// clamp keeps screen cursors inside lists that may have shrunk.
func (m *Model) clamp() {
	s := m.ctrl.Snapshot()
	m.planner.clamp(s)
	m.home.clamp()
}

func (m *Model) View() string {
	s := m.ctrl.Snapshot()

	var body string
	switch m.route {
	case router.Login:
		body = m.login.view(m)
	case router.Home:
		body = m.home.view(m, s)
	case router.Planner:
		body = m.planner.view(m, s)
	case router.Calendar:
		body = m.calendar.view(m, s)
	}
	if m.modal != nil {
		body = m.modal.view(m)
	}

	parts := []string{m.header()}
	if banner := m.banner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body)
	if m.route != router.Login {
		parts = append(parts, m.theme.Help.Render(m.help.View(keys)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) header() string {
	title := m.theme.Header.Render("willow")
	if m.route == router.Login {
		return title
	}
	tabs := make([]string, 0, len(router.Routes))
	for i, r := range router.Routes {
		label := " " + string(rune('1'+i)) + " " + r.Title() + " "
		if r == m.route {
			tabs = append(tabs, m.theme.Selected.Render(label))
		} else {
			tabs = append(tabs, m.theme.Subtle.Render(label))
		}
	}
	row := strings.Join(tabs, " ")
	if m.busy > 0 {
		row += m.theme.Subtle.Render("  …")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", row)
}

// banner renders the single visible notification.
func (m *Model) banner() string {
	n, ok := m.ctrl.Notifier().Current()
	if !ok {
		return ""
	}
	style := m.theme.Info
	switch n.Kind {
	case notify.Success:
		style = m.theme.Success
	case notify.Error:
		style = m.theme.Error
	}
	return style.Render(clip(n.Text, m.width))
}

// invalid reports input the form could not turn into a request.
func (m *Model) invalid(err error) tea.Cmd {
	m.ctrl.Notifier().Show(notify.Error, err.Error())
	return m.notified()
}
