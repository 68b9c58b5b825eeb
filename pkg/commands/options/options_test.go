package options

import (
	"testing"
	"time"

	"tableflip.dev/willow/pkg/planner"
)

func TestGetOn(t *testing.T) {
	now := func() time.Time { return time.Date(2025, time.December, 5, 15, 0, 0, 0, time.Local) }
	tests := map[string]struct {
		in      string
		want    planner.Date
		wantErr bool
	}{
		"default":    {in: "", want: planner.NewDate(2025, time.December, 5)},
		"tomorrow":   {in: "tomorrow", want: planner.NewDate(2025, time.December, 6)},
		"yesterday":  {in: "Yesterday", want: planner.NewDate(2025, time.December, 4)},
		"iso":        {in: "2025-3-4", want: planner.NewDate(2025, time.March, 4)},
		"short":      {in: "12/24", want: planner.NewDate(2025, time.December, 24)},
		"next year":  {in: "1/3", want: planner.NewDate(2026, time.January, 3)},
		"today kept": {in: "12/5", want: planner.NewDate(2025, time.December, 5)},
		"garbage":    {in: "soon", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			o := OnOptions{OnString: tc.in, Now: now}
			got, err := o.GetOn()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetOn: %v", err)
			}
			if !got.SameDay(tc.want) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTimes(t *testing.T) {
	if _, _, err := Times("", "10:00"); err == nil {
		t.Fatalf("end without start must fail")
	}
	if _, _, err := Times("10:00", "09:00"); err == nil {
		t.Fatalf("end before start must fail")
	}
	s, e, err := Times("09:00", "09:45")
	if err != nil || s.String() != "09:00" || e.String() != "09:45" {
		t.Fatalf("got %v %v %v", s, e, err)
	}
}

func TestTaskPayload(t *testing.T) {
	o := TaskOptions{Priority: "high", Category: 4, Start: "08:00"}
	day := planner.NewDate(2025, time.March, 4)
	task, err := o.Task("Run", day)
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if task.Priority != planner.PriorityHigh || *task.Category != 4 || task.StartTime.Hour != 8 || task.EndTime != nil {
		t.Fatalf("task = %+v", task)
	}
	o.Priority = "urgent"
	if _, err := o.Task("Run", day); err == nil {
		t.Fatalf("expected priority error")
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID([]string{"42"}); err != nil || id != 42 {
		t.Fatalf("got %d %v", id, err)
	}
	for _, args := range [][]string{nil, {"x"}, {"0"}, {"1", "2"}} {
		if _, err := ParseID(args); err == nil {
			t.Errorf("ParseID(%v) expected error", args)
		}
	}
}
