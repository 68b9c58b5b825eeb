package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/glyph"
	"tableflip.dev/willow/pkg/planner"
)

type section int

const (
	sectionTasks section = iota
	sectionGoals
	sectionSchedule
	numSections
)

func (s section) title() string {
	switch s {
	case sectionGoals:
		return "Goals"
	case sectionSchedule:
		return "Schedule"
	}
	return "To-do"
}

// plannerScreen shows one day: its tasks, goals, hourly schedule and note.
type plannerScreen struct {
	day     planner.Date
	focus   section
	cursors [numSections]int
}

func (s *plannerScreen) lengths(st app.State) [numSections]int {
	return [numSections]int{
		len(planner.TasksDue(st.Tasks, s.day)),
		len(planner.GoalsOn(st.Goals, s.day)),
		len(planner.TimeSlots()),
	}
}

func (s *plannerScreen) clamp(st app.State) {
	n := s.lengths(st)
	for i := range s.cursors {
		if s.cursors[i] >= n[i] {
			s.cursors[i] = n[i] - 1
		}
		if s.cursors[i] < 0 {
			s.cursors[i] = 0
		}
	}
}

func (s *plannerScreen) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	st := m.ctrl.Snapshot()
	switch {
	case key.Matches(msg, keys.Tab):
		s.focus = (s.focus + 1) % numSections
	case key.Matches(msg, keys.Up):
		s.cursors[s.focus]--
	case key.Matches(msg, keys.Down):
		s.cursors[s.focus]++
	case key.Matches(msg, keys.PrevDay):
		s.day = s.day.AddDays(-1)
	case key.Matches(msg, keys.NextDay):
		s.day = s.day.AddDays(1)
	case key.Matches(msg, keys.Today):
		s.day = planner.DateOf(m.now())
	case key.Matches(msg, keys.Add):
		return s.addTask(m)
	case key.Matches(msg, keys.AddGoal):
		return s.addGoal(m)
	case key.Matches(msg, keys.AddEvent):
		hour := ""
		if s.focus == sectionSchedule {
			hour = planner.TimeSlots()[s.cursors[sectionSchedule]].String()
		}
		return s.addEvent(m, hour)
	case key.Matches(msg, keys.Note):
		return s.editNote(m, st)
	case key.Matches(msg, keys.Toggle):
		return s.toggle(m, st)
	case key.Matches(msg, keys.Enter):
		if s.focus == sectionSchedule {
			slot := planner.Schedule(st.Events, s.day)[s.cursors[sectionSchedule]]
			if slot.Event == nil {
				return s.addEvent(m, slot.Time.String())
			}
			return nil
		}
		return s.toggle(m, st)
	case key.Matches(msg, keys.Delete):
		return s.remove(m, st)
	}
	s.clamp(st)
	return nil
}

func (s *plannerScreen) selectedTask(st app.State) (planner.Task, bool) {
	tasks := planner.TasksDue(st.Tasks, s.day)
	i := s.cursors[sectionTasks]
	if i < 0 || i >= len(tasks) {
		return planner.Task{}, false
	}
	return tasks[i], true
}

func (s *plannerScreen) selectedGoal(st app.State) (planner.FocusItem, bool) {
	goals := planner.GoalsOn(st.Goals, s.day)
	i := s.cursors[sectionGoals]
	if i < 0 || i >= len(goals) {
		return planner.FocusItem{}, false
	}
	return goals[i], true
}

func (s *plannerScreen) selectedEvent(st app.State) (planner.ScheduleEvent, bool) {
	slots := planner.Schedule(st.Events, s.day)
	i := s.cursors[sectionSchedule]
	if i < 0 || i >= len(slots) || slots[i].Event == nil {
		return planner.ScheduleEvent{}, false
	}
	return *slots[i].Event, true
}

func (s *plannerScreen) toggle(m *Model, st app.State) tea.Cmd {
	switch s.focus {
	case sectionTasks:
		t, ok := s.selectedTask(st)
		if !ok {
			return nil
		}
		return m.run("toggle task", func(ctx context.Context) error {
			return m.ctrl.ToggleTask(ctx, t.ID)
		})
	case sectionGoals:
		g, ok := s.selectedGoal(st)
		if !ok {
			return nil
		}
		return m.run("toggle goal", func(ctx context.Context) error {
			return m.ctrl.ToggleGoal(ctx, g.ID)
		})
	}
	return nil
}

func (s *plannerScreen) remove(m *Model, st app.State) tea.Cmd {
	switch s.focus {
	case sectionTasks:
		t, ok := s.selectedTask(st)
		if !ok {
			return nil
		}
		return m.confirm(fmt.Sprintf("Delete task %q?", t.Title), func() tea.Cmd {
			return m.run("delete task", func(ctx context.Context) error {
				return m.ctrl.DeleteTask(ctx, t.ID, app.Confirmed)
			})
		})
	case sectionGoals:
		g, ok := s.selectedGoal(st)
		if !ok {
			return nil
		}
		return m.confirm(fmt.Sprintf("Delete goal %q?", g.Text), func() tea.Cmd {
			return m.run("delete goal", func(ctx context.Context) error {
				return m.ctrl.DeleteGoal(ctx, g.ID, app.Confirmed)
			})
		})
	case sectionSchedule:
		e, ok := s.selectedEvent(st)
		if !ok {
			return nil
		}
		return m.confirm(fmt.Sprintf("Delete event %q?", e.Title), func() tea.Cmd {
			return m.run("delete event", func(ctx context.Context) error {
				return m.ctrl.DeleteEvent(ctx, e.ID, app.Confirmed)
			})
		})
	}
	return nil
}

func validClock(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	_, err := planner.ParseClock(v)
	return err
}

func (s *plannerScreen) addTask(m *Model) tea.Cmd {
	day := s.day
	var title, description, start, end string
	priority := string(planner.PriorityMedium)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&title).Validate(huh.ValidateNotEmpty()),
		huh.NewInput().Title("Description").Value(&description),
		huh.NewSelect[string]().Title("Priority").
			Options(
				huh.NewOption("Low", string(planner.PriorityLow)),
				huh.NewOption("Medium", string(planner.PriorityMedium)),
				huh.NewOption("High", string(planner.PriorityHigh)),
			).Value(&priority),
		huh.NewInput().Title("Start (HH:MM, optional)").Value(&start).Validate(validClock),
		huh.NewInput().Title("End (HH:MM, optional)").Value(&end).Validate(validClock),
	))
	return m.open("New task for "+day.Format("Jan 2"), form, func() tea.Cmd {
		return m.addTaskCmd(planner.NewTask{
			Title:       title,
			Description: description,
			DueDate:     day,
			Priority:    planner.Priority(priority),
		}, start, end)
	})
}

// addTaskCmd attaches the optional start and end and creates the task.
func (m *Model) addTaskCmd(in planner.NewTask, start, end string) tea.Cmd {
	var err error
	in.StartTime, in.EndTime, err = planner.ParseSpan(start, end)
	if err != nil {
		return m.invalid(err)
	}
	return m.run("add task", func(ctx context.Context) error {
		return m.ctrl.AddTask(ctx, in)
	})
}

func (s *plannerScreen) addGoal(m *Model) tea.Cmd {
	day := s.day
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Goal").Value(&text).Validate(huh.ValidateNotEmpty()),
	))
	return m.open("New goal for "+day.Format("Jan 2"), form, func() tea.Cmd {
		return m.run("add goal", func(ctx context.Context) error {
			return m.ctrl.AddGoal(ctx, text, day)
		})
	})
}

func (s *plannerScreen) addEvent(m *Model, start string) tea.Cmd {
	day := s.day
	var title, end string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Event").Value(&title).Validate(huh.ValidateNotEmpty()),
		huh.NewInput().Title("Start (HH:MM)").Value(&start).Validate(func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("start time is required")
			}
			return validClock(v)
		}),
		huh.NewInput().Title("End (HH:MM, optional)").Value(&end).Validate(validClock),
	))
	return m.open("New event for "+day.Format("Jan 2"), form, func() tea.Cmd {
		from, to, err := planner.ParseSpan(start, end)
		if err != nil {
			return m.invalid(err)
		}
		in := planner.NewScheduleEvent{Title: title, Date: day, StartTime: from, EndTime: to}
		return m.run("add event", func(ctx context.Context) error {
			return m.ctrl.AddEvent(ctx, in)
		})
	})
}

func (s *plannerScreen) editNote(m *Model, st app.State) tea.Cmd {
	day := s.day
	n, _ := planner.NoteFor(st.Notes, day)
	content := n.Content
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Notes").Lines(6).Value(&content),
	))
	return m.open("Notes for "+day.Format("Jan 2"), form, func() tea.Cmd {
		return m.run("save note", func(ctx context.Context) error {
			return m.ctrl.SaveNote(ctx, day, content)
		})
	})
}

func (s *plannerScreen) view(m *Model, st app.State) string {
	t := m.theme
	header := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(s.day.Format("Monday, January 2")),
		t.Subtle.Render(s.day.Format("January 2006")),
		s.week(t),
	)

	tasks := planner.TasksDue(st.Tasks, s.day)
	done, total := planner.Progress(tasks)
	todo := []string{progressBar(t, done, total, 16) + fmt.Sprintf(" %d/%d", done, total)}
	for i, task := range tasks {
		line := glyph.ForTask(task.Completed).String() + " " + glyph.ForPriority(string(task.Priority)).String() + " "
		title := task.Title
		if task.Completed {
			title = t.Done.Render(title)
		}
		line += title
		if task.StartTime != nil {
			line += t.Subtle.Render(" " + task.StartTime.String())
		}
		if name := planner.CategoryName(st.Categories, task.Category); name != "" {
			line += t.Subtle.Render(" #" + name)
		}
		todo = append(todo, s.row(t, sectionTasks, i, line))
	}
	if len(tasks) == 0 {
		todo = append(todo, t.Subtle.Render("nothing due"))
	}

	goals := planner.GoalsOn(st.Goals, s.day)
	var focus []string
	for i, g := range goals {
		text := g.Text
		if g.Completed {
			text = t.Done.Render(text)
		}
		focus = append(focus, s.row(t, sectionGoals, i, glyph.ForGoal(g.Completed).String()+" "+text))
	}
	if len(goals) == 0 {
		focus = append(focus, t.Subtle.Render("no goals yet"))
	}
	note, ok := planner.NoteFor(st.Notes, s.day)
	focus = append(focus, "", t.Title.Render("Notes"))
	if ok && strings.TrimSpace(note.Content) != "" {
		for _, line := range strings.Split(note.Content, "\n") {
			focus = append(focus, glyph.Note.String()+" "+clip(line, 40))
		}
	} else {
		focus = append(focus, t.Subtle.Render("press N to write"))
	}

	schedule := s.schedule(m, st)

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.panel(t, sectionTasks, todo),
		s.panel(t, sectionGoals, focus),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", s.panel(t, sectionSchedule, schedule))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// week renders the Monday-first tracker with the shown day highlighted.
func (s *plannerScreen) week(t Theme) string {
	idx := planner.WeekIndex(s.day)
	cells := make([]string, len(planner.WeekDays))
	for i, d := range planner.WeekDays {
		if i == idx {
			cells[i] = t.Selected.Render(" " + d + " ")
			continue
		}
		cells[i] = t.Weekday.Render(" " + d + " ")
	}
	return strings.Join(cells, "")
}

// schedule shows a window of hourly slots around the cursor.
func (s *plannerScreen) schedule(m *Model, st app.State) []string {
	t := m.theme
	slots := planner.Schedule(st.Events, s.day)
	window := 12
	if m.height > 0 && m.height-10 < window {
		window = m.height - 10
	}
	if window < 4 {
		window = 4
	}
	first := s.cursors[sectionSchedule] - window/2
	if first < 0 {
		first = 0
	}
	if first+window > len(slots) {
		first = len(slots) - window
	}
	lines := make([]string, 0, window)
	for i := first; i < first+window; i++ {
		slot := slots[i]
		line := t.Subtle.Render(slot.Time.String()) + "  "
		if slot.Event != nil {
			line += glyph.Event.String() + " " + slot.Event.Title
			if slot.Event.EndTime != nil {
				line += t.Subtle.Render(fmt.Sprintf(" (%s-%s)", slot.Event.StartTime, slot.Event.EndTime))
			}
		}
		lines = append(lines, s.row(t, sectionSchedule, i, line))
	}
	return lines
}

func (s *plannerScreen) row(t Theme, sec section, i int, line string) string {
	if s.focus == sec && s.cursors[sec] == i {
		return t.Selected.Render("›") + " " + line
	}
	return "  " + line
}

func (s *plannerScreen) panel(t Theme, sec section, lines []string) string {
	style := t.Panel
	if s.focus == sec {
		style = t.Focused
	}
	content := append([]string{t.Title.Render(sec.title())}, lines...)
	return style.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
