package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/willow/pkg/glyph"
	"tableflip.dev/willow/pkg/planner"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Week prints the Monday-first tracker with day highlighted.
func (pp *PrettyPrint) Week(day planner.Date) {
	b := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	cur := planner.WeekIndex(day)
	for i, d := range planner.WeekDays {
		if i == cur {
			_, _ = b.Fprint(pp.out(), d)
		} else {
			_, _ = faint.Fprint(pp.out(), d)
		}
		_, _ = fmt.Fprint(pp.out(), " ")
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// Month prints a Sunday-first grid; days with events are bold and today is
// underlined.
func (pp *PrettyPrint) Month(then time.Time, today planner.Date, events []planner.CalendarEvent) {
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = fmt.Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	now := color.New(color.Bold, color.Underline)

	for _, week := range planner.MonthWeeks(then) {
		for _, d := range week {
			switch {
			case d.IsZero():
				_, _ = fmt.Fprint(pp.out(), "   ")
			case d.SameDay(today):
				_, _ = now.Fprintf(pp.out(), "%2d", d.Day())
				_, _ = fmt.Fprint(pp.out(), " ")
			case len(planner.EventsOnDay(events, d)) > 0:
				_, _ = l2.Fprintf(pp.out(), "%2d ", d.Day())
			default:
				_, _ = l1.Fprintf(pp.out(), "%2d ", d.Day())
			}
		}
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

// MonthLong lists each day of the month that has events.
func (pp *PrettyPrint) MonthLong(then time.Time, events []planner.CalendarEvent) {
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	faint := color.New(color.Faint)

	found := false
	for i := 1; i <= planner.DaysIn(then); i++ {
		d := planner.NewDate(then.Year(), then.Month(), i)
		on := planner.EventsOnDay(events, d)
		if len(on) == 0 {
			continue
		}
		found = true
		printer := b
		if d.Weekday() == time.Sunday {
			printer = s
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s\n", i, d.Weekday().String()[0:2])
		for _, e := range on {
			when := "all day"
			if !e.AllDay {
				when = e.Start.Format("15:04") + "-" + e.End.Format("15:04")
			}
			bullet := glyph.ForTask(e.Task.Completed)
			if pp.ShowID {
				_, _ = fmt.Fprintf(pp.out(), "   %s %-11s %s %s\n", bullet, faint.Sprint(when), e.Title, faint.Sprintf("[%d]", e.Task.ID))
			} else {
				_, _ = fmt.Fprintf(pp.out(), "   %s %-11s %s\n", bullet, faint.Sprint(when), e.Title)
			}
		}
	}
	if !found {
		pp.none()
	}
}
