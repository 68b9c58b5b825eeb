package planner

// Slot is one hourly row of the day's schedule.
type Slot struct {
	Time  Clock
	Event *ScheduleEvent
}

// TimeSlots returns the 24 hourly slot labels, 00:00 through 23:00.
func TimeSlots() []Clock {
	slots := make([]Clock, 24)
	for i := range slots {
		slots[i] = Clock{Hour: i}
	}
	return slots
}

// TasksDue keeps the tasks due on day, in server order.
func TasksDue(tasks []Task, day Date) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate.SameDay(day) {
			out = append(out, t)
		}
	}
	return out
}

func GoalsOn(goals []FocusItem, day Date) []FocusItem {
	out := make([]FocusItem, 0, len(goals))
	for _, g := range goals {
		if g.Date.SameDay(day) {
			out = append(out, g)
		}
	}
	return out
}

func EventsOn(events []ScheduleEvent, day Date) []ScheduleEvent {
	out := make([]ScheduleEvent, 0, len(events))
	for _, e := range events {
		if e.Date.SameDay(day) {
			out = append(out, e)
		}
	}
	return out
}

// EventForSlot returns the first event, in list order, starting inside the
// slot's hour. Later events in an occupied slot are never shown there.
func EventForSlot(events []ScheduleEvent, slot Clock) (ScheduleEvent, bool) {
	for _, e := range events {
		if e.StartTime.Hour == slot.Hour {
			return e, true
		}
	}
	return ScheduleEvent{}, false
}

// Schedule lays the day's events over the 24 hourly slots.
func Schedule(events []ScheduleEvent, day Date) []Slot {
	todays := EventsOn(events, day)
	slots := TimeSlots()
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Time: s}
		if e, ok := EventForSlot(todays, s); ok {
			ev := e
			out[i].Event = &ev
		}
	}
	return out
}

// WeekDays are the Monday-first initials of the week tracker.
var WeekDays = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// WeekIndex is day's position in a Monday-first week.
func WeekIndex(day Date) int {
	return (int(day.Weekday()) + 6) % 7
}

// Progress counts completed tasks among those given.
func Progress(tasks []Task) (done, total int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(tasks)
}

// NoteFor finds the note recorded for day.
func NoteFor(notes []Note, day Date) (Note, bool) {
	for _, n := range notes {
		if n.Date.SameDay(day) {
			return n, true
		}
	}
	return Note{}, false
}
