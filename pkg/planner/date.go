package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout       = "2006-01-02"
	clockLayout      = "15:04:05"
	clockLayoutShort = "15:04"
)

// Date is a calendar day with no time-of-day component. The zero Date means
// "no date" and is encoded as JSON null.
type Date struct {
	time.Time
}

// NewDate returns the day y-m-d in the local zone.
func NewDate(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today is the local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate reads a YYYY-MM-DD string. Longer timestamps are accepted and
// truncated to their date part.
func ParseDate(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if len(v) > len(DateLayout) {
		v = v[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, v, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// SameDay reports whether both dates name the same calendar day.
func (d Date) SameDay(o Date) bool {
	if d.IsZero() || o.IsZero() {
		return false
	}
	dy, dm, dd := d.Date()
	oy, om, od := o.Date()
	return dy == oy && dm == om && dd == od
}

func (d Date) SameMonth(then time.Time) bool {
	if d.IsZero() {
		return false
	}
	return d.Month() == then.Month() && d.Year() == then.Year()
}

// AddDays moves the date by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a time of day with second precision.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock accepts HH:MM or HH:MM:SS.
func ParseClock(v string) (Clock, error) {
	v = strings.TrimSpace(v)
	layout := clockLayout
	if strings.Count(v, ":") == 1 {
		layout = clockLayoutShort
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q, want HH:MM", v)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// At anchors the clock on the given day.
func (c Clock) At(d Date) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, c.Hour, c.Minute, c.Second, 0, d.Location())
}

// Before orders clocks within one day.
func (c Clock) Before(o Clock) bool {
	return c.seconds() < o.seconds()
}

func (c Clock) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%02d:%02d:%02d"`, c.Hour, c.Minute, c.Second)), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// ParseSpan parses an optional start/end pair. An end needs a start and must
// come after it.
func ParseSpan(start, end string) (*Clock, *Clock, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" {
		if end != "" {
			return nil, nil, fmt.Errorf("an end time needs a start time")
		}
		return nil, nil, nil
	}
	s, err := ParseClock(start)
	if err != nil {
		return nil, nil, err
	}
	if end == "" {
		return &s, nil, nil
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, nil, err
	}
	if !s.Before(e) {
		return nil, nil, fmt.Errorf("end time %s is not after start time %s", e, s)
	}
	return &s, &e, nil
}
