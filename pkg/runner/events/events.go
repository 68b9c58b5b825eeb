// Package events provides the CLI runners for the hourly schedule.
package events

import (
	"context"
	"io"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

// List prints the day's schedule. Every hour is shown unless BusyOnly.
type List struct {
	Controller *app.Controller
	On         planner.Date
	BusyOnly   bool
	ShowID     bool
	Format     string
	Out        io.Writer
}

func (l *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if err := l.Controller.RefreshPlanner(ctx); err != nil {
		pp.Notification(l.Controller.Notifier().Current())
		return err
	}
	events := l.Controller.Snapshot().Events
	if handled, err := printers.Encode(pp.Writer(), l.Format, planner.EventsOn(events, l.On)); handled {
		return err
	}
	pp.NewLine()
	pp.Title("Schedule for " + l.On.Format("Monday, January 2"))
	pp.Schedule(planner.Schedule(events, l.On), l.BusyOnly)
	return nil
}

type Add struct {
	Controller *app.Controller
	Event      planner.NewScheduleEvent
	Out        io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	err := a.Controller.AddEvent(ctx, a.Event)
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notification(a.Controller.Notifier().Current())
	return err
}

type Delete struct {
	Controller *app.Controller
	ID         int
	Confirm    app.Confirm
	Out        io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: d.Out}
	err := d.Controller.RefreshPlanner(ctx)
	if err == nil {
		err = d.Controller.DeleteEvent(ctx, d.ID, d.Confirm)
	}
	pp.Notification(d.Controller.Notifier().Current())
	return err
}
