package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/willow/pkg/planner"
)

func init() {
	color.NoColor = true
}

func clock(t *testing.T, v string) *planner.Clock {
	t.Helper()
	c, err := planner.ParseClock(v)
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	return &c
}

func TestTasks(t *testing.T) {
	var buf bytes.Buffer
	cat := 3
	pp := PrettyPrint{Out: &buf, ShowID: true, Categories: []planner.Category{{ID: 3, Name: "work"}}}
	day := planner.NewDate(2025, time.March, 4)

	pp.Tasks(
		planner.Task{ID: 11, Title: "Write report", DueDate: day, Priority: planner.PriorityHigh, StartTime: clock(t, "09:00"), EndTime: clock(t, "10:30"), Category: &cat},
		planner.Task{ID: 12, Title: "Stretch", DueDate: day, Completed: true},
	)
	out := buf.String()
	for _, want := range []string{"11", "● ✷ Write report", "2025-03-04 09:00-10:30", "#work", "✘", "Stretch"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestEmptyListPrintsNone(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Goals()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestScheduleBusyOnly(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	day := planner.NewDate(2025, time.March, 4)
	events := []planner.ScheduleEvent{
		{ID: 1, Title: "Standup", Date: day, StartTime: *clock(t, "09:00")},
		{ID: 2, Title: "Coffee", Date: day, StartTime: *clock(t, "09:30")},
		{ID: 3, Title: "Lunch", Date: day, StartTime: *clock(t, "12:15"), EndTime: clock(t, "13:00")},
	}
	pp.Schedule(planner.Schedule(events, day), true)
	out := buf.String()
	if !strings.Contains(out, "Standup") || strings.Contains(out, "Coffee") {
		t.Fatalf("first event per slot expected:\n%s", out)
	}
	if !strings.Contains(out, "Lunch (12:15-13:00)") {
		t.Fatalf("missing timed lunch:\n%s", out)
	}
	if strings.Count(out, "\n") != 3 {
		t.Fatalf("expected two rows and a blank line:\n%q", out)
	}
}

func TestMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	then := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	pp.Month(then, planner.NewDate(2025, time.March, 4), nil)

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "March 2025") {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[2] != strings.Repeat("   ", 6)+" 1 " {
		t.Fatalf("first week = %q", lines[2])
	}
	if !strings.HasPrefix(lines[7], "30 31") {
		t.Fatalf("last week = %q", lines[7])
	}
}

func TestMonthLong(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	day := planner.NewDate(2025, time.March, 4)
	events := planner.CalendarEvents([]planner.Task{
		{ID: 1, Title: "Dentist", DueDate: day, StartTime: clock(t, "15:00")},
		{ID: 2, Title: "Taxes", DueDate: day},
	})
	pp.MonthLong(day.Time, events)
	out := buf.String()
	if !strings.Contains(out, " 4 Tu") {
		t.Fatalf("missing day header:\n%s", out)
	}
	all := strings.Index(out, "Taxes")
	timed := strings.Index(out, "Dentist")
	if all < 0 || timed < 0 || all > timed {
		t.Fatalf("all-day events should come first:\n%s", out)
	}
	if !strings.Contains(out, "15:00-16:00") {
		t.Fatalf("default one hour length missing:\n%s", out)
	}
}

func TestWeek(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Week(planner.NewDate(2025, time.March, 4))
	if got := buf.String(); got != "M T W T F S S \n\n" {
		t.Fatalf("week = %q", got)
	}
}

func TestEncodeYAMLUsesWireDates(t *testing.T) {
	var buf bytes.Buffer
	task := planner.Task{ID: 1, Title: "x", DueDate: planner.NewDate(2025, time.March, 4), StartTime: clock(t, "09:00")}
	handled, err := Encode(&buf, FormatYAML, []planner.Task{task})
	if err != nil || !handled {
		t.Fatalf("encode: %v %v", handled, err)
	}
	out := buf.String()
	if !strings.Contains(out, "due_date: \"2025-03-04\"") && !strings.Contains(out, "due_date: 2025-03-04") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	if !strings.Contains(out, "09:00") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	if handled, _ := Encode(&buf, FormatTable, nil); handled {
		t.Fatalf("table format must fall through to the printer")
	}
}
