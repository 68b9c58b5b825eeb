// Package calendar prints a month of dated tasks.
package calendar

import (
	"context"
	"io"
	"time"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

type Calendar struct {
	Controller *app.Controller
	Month      time.Time
	Today      planner.Date
	// Long lists each day's events under the grid.
	Long   bool
	Format string
	Out    io.Writer
}

func (c *Calendar) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: c.Out}
	if err := c.Controller.RefreshTasks(ctx); err != nil {
		pp.Notification(c.Controller.Notifier().Current())
		return err
	}

	events := make([]planner.CalendarEvent, 0)
	for _, e := range planner.CalendarEvents(c.Controller.Snapshot().Tasks) {
		if planner.DateOf(e.Start).SameMonth(c.Month) {
			events = append(events, e)
		}
	}
	if handled, err := printers.Encode(pp.Writer(), c.Format, events); handled {
		return err
	}

	today := c.Today
	if today.IsZero() {
		today = planner.Today()
	}
	pp.NewLine()
	pp.Month(c.Month, today, events)
	if c.Long {
		pp.MonthLong(c.Month, events)
	}
	return nil
}
