package planner

import (
	"testing"
	"time"
)

func TestScheduleFirstMatchWins(t *testing.T) {
	day := NewDate(2025, time.March, 4)
	events := []ScheduleEvent{
		{ID: 1, Title: "Standup", Date: day, StartTime: Clock{Hour: 9}},
		{ID: 2, Title: "Dentist", Date: day, StartTime: Clock{Hour: 9, Minute: 30}},
		{ID: 3, Title: "Lunch", Date: day, StartTime: Clock{Hour: 12}},
		{ID: 4, Title: "Yesterday", Date: day.AddDays(-1), StartTime: Clock{Hour: 8}},
	}
	slots := Schedule(events, day)
	if len(slots) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(slots))
	}
	if slots[9].Event == nil || slots[9].Event.ID != 1 {
		t.Fatalf("expected first event to own the 09:00 slot, got %+v", slots[9].Event)
	}
	if slots[12].Event == nil || slots[12].Event.Title != "Lunch" {
		t.Fatalf("expected lunch at noon, got %+v", slots[12].Event)
	}
	if slots[8].Event != nil {
		t.Fatalf("expected other days to be filtered, got %+v", slots[8].Event)
	}
}

func TestScheduleSlotTakesAnyMinuteInTheHour(t *testing.T) {
	day := NewDate(2025, time.March, 4)
	events := []ScheduleEvent{{ID: 7, Title: "Call", Date: day, StartTime: Clock{Hour: 10, Minute: 45}}}
	slots := Schedule(events, day)
	if slots[10].Event == nil || slots[10].Event.ID != 7 {
		t.Fatalf("expected 10:45 to land in the 10:00 slot, got %+v", slots[10].Event)
	}
	if slots[11].Event != nil {
		t.Fatalf("expected 11:00 to stay free, got %+v", slots[11].Event)
	}
}

func TestTasksDue(t *testing.T) {
	day := NewDate(2025, time.March, 4)
	tasks := []Task{
		{ID: 1, Title: "a", DueDate: day},
		{ID: 2, Title: "b", DueDate: day.AddDays(1)},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d", DueDate: day, Completed: true},
	}
	due := TasksDue(tasks, day)
	if len(due) != 2 || due[0].ID != 1 || due[1].ID != 4 {
		t.Fatalf("unexpected due tasks %+v", due)
	}
	done, total := Progress(due)
	if done != 1 || total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", done, total)
	}
}

func TestWeekIndex(t *testing.T) {
	// 2025-03-03 is a Monday.
	if got := WeekIndex(NewDate(2025, time.March, 3)); got != 0 {
		t.Fatalf("expected Monday at 0, got %d", got)
	}
	if got := WeekIndex(NewDate(2025, time.March, 9)); got != 6 {
		t.Fatalf("expected Sunday at 6, got %d", got)
	}
}

func TestCalendarEvents(t *testing.T) {
	day := NewDate(2025, time.March, 4)
	end := Clock{Hour: 11}
	tasks := []Task{
		{ID: 1, Title: "all day", DueDate: day},
		{ID: 2, Title: "timed", DueDate: day, StartTime: &Clock{Hour: 9}},
		{ID: 3, Title: "bounded", DueDate: day, StartTime: &Clock{Hour: 10}, EndTime: &end},
		{ID: 4, Title: "undated"},
	}
	evs := CalendarEvents(tasks)
	if len(evs) != 3 {
		t.Fatalf("expected undated task to be skipped, got %d events", len(evs))
	}
	if !evs[0].AllDay {
		t.Fatalf("expected all-day event for untimed task")
	}
	if got := evs[1].End.Sub(evs[1].Start); got != time.Hour {
		t.Fatalf("expected default one hour length, got %v", got)
	}
	if evs[2].End.Hour() != 11 {
		t.Fatalf("expected explicit end time, got %v", evs[2].End)
	}

	onDay := EventsOnDay(evs, day)
	if len(onDay) != 3 || !onDay[0].AllDay || onDay[1].Title != "timed" {
		t.Fatalf("unexpected ordering %+v", onDay)
	}
}

func TestMonthWeeks(t *testing.T) {
	// March 2025 starts on a Saturday and has 31 days.
	weeks := MonthWeeks(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local))
	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	if !weeks[0][5].IsZero() || weeks[0][6].Day() != 1 {
		t.Fatalf("expected the 1st on Saturday, got %v", weeks[0])
	}
	if weeks[5][1].Day() != 31 {
		t.Fatalf("expected the 31st on the last Monday, got %v", weeks[5])
	}
}

func TestQuoteOfTheDayIsStable(t *testing.T) {
	a := QuoteOfTheDay(time.Date(2025, time.March, 4, 8, 0, 0, 0, time.Local))
	b := QuoteOfTheDay(time.Date(2025, time.March, 4, 22, 0, 0, 0, time.Local))
	if a != b {
		t.Fatalf("expected the same quote all day, got %q and %q", a.Text, b.Text)
	}
}
