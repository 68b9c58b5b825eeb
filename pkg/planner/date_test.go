package planner

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":3,"title":"x","due_date":"2025-03-04","start_time":"09:30:00","completed":true}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !task.DueDate.SameDay(NewDate(2025, time.March, 4)) {
		t.Fatalf("unexpected due date %v", task.DueDate)
	}
	if task.StartTime == nil || task.StartTime.Hour != 9 || task.StartTime.Minute != 30 {
		t.Fatalf("unexpected start time %+v", task.StartTime)
	}
	if task.EndTime != nil {
		t.Fatalf("expected no end time, got %+v", task.EndTime)
	}

	b, err := json.Marshal(NewTask{Title: "x", DueDate: NewDate(2025, time.March, 4), StartTime: &Clock{Hour: 9}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"x","due_date":"2025-03-04","start_time":"09:00:00"}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestDateNull(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"title":"x","due_date":null}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !task.DueDate.IsZero() {
		t.Fatalf("expected zero date, got %v", task.DueDate)
	}
	b, _ := json.Marshal(task.DueDate)
	if string(b) != "null" {
		t.Fatalf("expected null, got %s", b)
	}
}

func TestParseClock(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: Clock{Hour: 9}},
		{in: "23:15:07", want: Clock{Hour: 23, Minute: 15, Second: 7}},
		{in: "25:00", wantErr: true},
		{in: "noon", wantErr: true},
	} {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]Priority{"high": PriorityHigh, "L": PriorityLow, "": PriorityMedium, "Medium": PriorityMedium} {
		got, err := ParsePriority(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}

func TestParseSpan(t *testing.T) {
	tests := map[string]struct {
		start, end string
		wantStart  string
		wantEnd    string
		wantErr    bool
	}{
		"empty":          {},
		"start only":     {start: "09:30", wantStart: "09:30"},
		"both":           {start: "09:00", end: "10:15", wantStart: "09:00", wantEnd: "10:15"},
		"end only":       {end: "10:00", wantErr: true},
		"end before":     {start: "10:00", end: "09:00", wantErr: true},
		"same time":      {start: "10:00", end: "10:00", wantErr: true},
		"bad start time": {start: "noon", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s, e, err := ParseSpan(tc.start, tc.end)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpan: %v", err)
			}
			if got := clockString(s); got != tc.wantStart {
				t.Fatalf("start = %q, want %q", got, tc.wantStart)
			}
			if got := clockString(e); got != tc.wantEnd {
				t.Fatalf("end = %q, want %q", got, tc.wantEnd)
			}
		})
	}
}

func clockString(c *Clock) string {
	if c == nil {
		return ""
	}
	return c.String()
}
