package planner

import (
	"sort"
	"time"
)

// DefaultEventLength is used for timed tasks without an end time.
const DefaultEventLength = time.Hour

// CalendarEvent is a task placed on the month view.
type CalendarEvent struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	Task   Task
}

// CalendarEvents maps tasks onto the calendar. Tasks with a start time become
// timed events; the rest are all-day on their due date. Undated tasks are
// skipped.
func CalendarEvents(tasks []Task) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		ev := CalendarEvent{Title: t.Title, Task: t}
		if t.StartTime != nil {
			ev.Start = t.StartTime.At(t.DueDate)
			if t.EndTime != nil {
				ev.End = t.EndTime.At(t.DueDate)
			} else {
				ev.End = ev.Start.Add(DefaultEventLength)
			}
		} else {
			ev.AllDay = true
			ev.Start = t.DueDate.Time
			ev.End = t.DueDate.Time
		}
		out = append(out, ev)
	}
	return out
}

// EventsOnDay returns the events starting on day: all-day first, then by time.
func EventsOnDay(events []CalendarEvent, day Date) []CalendarEvent {
	out := make([]CalendarEvent, 0)
	for _, e := range events {
		if DateOf(e.Start).SameDay(day) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AllDay != out[j].AllDay {
			return out[i].AllDay
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// DaysIn is the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay is the weekday of the first of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, time.UTC).Weekday()
}

// MonthWeeks lays out then's month as Sunday-first weeks. Cells outside the
// month are zero Dates.
func MonthWeeks(then time.Time) [][7]Date {
	first := NewDate(then.Year(), then.Month(), 1)
	offset := int(StartDay(then))
	days := DaysIn(then)

	var weeks [][7]Date
	var week [7]Date
	col := offset
	for d := 0; d < days; d++ {
		week[col] = first.AddDays(d)
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]Date{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// NextMonth returns the first day of the month after then.
func NextMonth(then time.Time) Date {
	return NewDate(then.Year(), then.Month()+1, 1)
}

// PrevMonth returns the first day of the month before then.
func PrevMonth(then time.Time) Date {
	return NewDate(then.Year(), then.Month()-1, 1)
}
