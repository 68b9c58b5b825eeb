package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/glyph"
	"tableflip.dev/willow/pkg/planner"
)

// calendarScreen is a month grid of dated tasks with a selected day.
type calendarScreen struct {
	selected planner.Date
}

func newCalendarScreen(today planner.Date) *calendarScreen {
	return &calendarScreen{selected: today}
}

func (s *calendarScreen) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Left):
		s.selected = s.selected.AddDays(-1)
	case key.Matches(msg, keys.Right):
		s.selected = s.selected.AddDays(1)
	case key.Matches(msg, keys.Up):
		s.selected = s.selected.AddDays(-7)
	case key.Matches(msg, keys.Down):
		s.selected = s.selected.AddDays(7)
	case key.Matches(msg, keys.PrevDay):
		s.selected = planner.PrevMonth(s.selected.Time)
	case key.Matches(msg, keys.NextDay):
		s.selected = planner.NextMonth(s.selected.Time)
	case key.Matches(msg, keys.Today):
		s.selected = planner.DateOf(m.now())
	case key.Matches(msg, keys.Add), key.Matches(msg, keys.Enter):
		return s.addTask(m)
	}
	return nil
}

// addTask creates a task due on the selected day. A start without an end
// gets the default event length.
func (s *calendarScreen) addTask(m *Model) tea.Cmd {
	day := s.selected
	var title, start, end string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&title).Validate(huh.ValidateNotEmpty()),
		huh.NewInput().Title("Start (HH:MM, optional)").Value(&start).Validate(validClock),
		huh.NewInput().Title("End (HH:MM, optional)").Value(&end).Validate(validClock),
	))
	return m.open("New task for "+day.Format("Jan 2"), form, func() tea.Cmd {
		return m.addTaskCmd(planner.NewTask{
			Title:    title,
			DueDate:  day,
			Priority: planner.PriorityMedium,
		}, start, defaultEnd(start, end))
	})
}

// defaultEnd fills in start plus the default event length when no end was
// given and the result stays on the same day.
func defaultEnd(start, end string) string {
	if strings.TrimSpace(end) != "" || strings.TrimSpace(start) == "" {
		return end
	}
	c, err := planner.ParseClock(start)
	if err != nil {
		return end
	}
	hours := int(planner.DefaultEventLength.Hours())
	if c.Hour+hours > 23 {
		return end
	}
	c.Hour += hours
	return c.String()
}

func (s *calendarScreen) view(m *Model, st app.State) string {
	t := m.theme
	today := planner.DateOf(m.now())
	events := planner.CalendarEvents(st.Tasks)

	var b strings.Builder
	b.WriteString(t.Title.Render(s.selected.Format("January 2006")))
	b.WriteString("\n\n")

	header := make([]string, 0, 7)
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header = append(header, t.Weekday.Render(fmt.Sprintf(" %s  ", d)))
	}
	b.WriteString(strings.Join(header, ""))
	b.WriteString("\n")

	for _, week := range planner.MonthWeeks(s.selected.Time) {
		cells := make([]string, 0, 7)
		for _, d := range week {
			if d.IsZero() {
				cells = append(cells, "     ")
				continue
			}
			mark := " "
			if len(planner.EventsOnDay(events, d)) > 0 {
				mark = "•"
			}
			label := fmt.Sprintf(" %2d", d.Day())
			switch {
			case d.SameDay(s.selected):
				label = t.Selected.Render(label)
			case d.SameDay(today):
				label = t.Today.Render(label)
			}
			cells = append(cells, label+t.Accent.Render(mark)+" ")
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(t.Title.Render(s.selected.Format("Monday, January 2")))
	b.WriteString("\n")
	dayEvents := planner.EventsOnDay(events, s.selected)
	if len(dayEvents) == 0 {
		b.WriteString(t.Subtle.Render("nothing scheduled"))
		b.WriteString("\n")
	}
	for _, e := range dayEvents {
		when := "all day"
		if !e.AllDay {
			when = e.Start.Format("15:04") + "-" + e.End.Format("15:04")
		}
		title := e.Title
		if e.Task.Completed {
			title = t.Done.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", glyph.ForTask(e.Task.Completed), t.Subtle.Render(fmt.Sprintf("%-11s", when)), title))
	}
	return t.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
