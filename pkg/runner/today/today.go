// Package today prints the dashboard for a single day.
package today

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

// Dashboard is what the today command encodes for json and yaml output.
type Dashboard struct {
	Date     planner.Date            `json:"date" yaml:"date"`
	User     planner.User            `json:"user" yaml:"user"`
	Tasks    []planner.Task          `json:"tasks" yaml:"tasks"`
	Goals    []planner.FocusItem     `json:"goals" yaml:"goals"`
	Schedule []planner.ScheduleEvent `json:"schedule" yaml:"schedule"`
	Note     *planner.Note           `json:"note,omitempty" yaml:"note,omitempty"`
}

type Today struct {
	Controller *app.Controller
	On         planner.Date
	ShowID     bool
	Format     string
	Now        func() time.Time
	Out        io.Writer
}

func (t *Today) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Today) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: t.ShowID, Out: t.Out}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return t.Controller.RefreshProfile(gctx) })
	g.Go(func() error { return t.Controller.RefreshPlanner(gctx) })
	if err := g.Wait(); err != nil {
		pp.Notification(t.Controller.Notifier().Current())
		return err
	}

	s := t.Controller.Snapshot()
	d := Dashboard{
		Date:     t.On,
		User:     s.User,
		Tasks:    planner.TasksDue(s.Tasks, t.On),
		Goals:    planner.GoalsOn(s.Goals, t.On),
		Schedule: planner.EventsOn(s.Events, t.On),
	}
	if n, ok := planner.NoteFor(s.Notes, t.On); ok {
		d.Note = &n
	}
	if handled, err := printers.Encode(pp.Writer(), t.Format, d); handled {
		return err
	}

	pp.Categories = s.Categories
	now := t.now()
	bold := color.New(color.Bold)

	pp.NewLine()
	_, _ = bold.Fprintf(pp.Writer(), "%s, %s\n", Greeting(now), s.User.Username)
	_, _ = fmt.Fprintln(pp.Writer(), t.On.Format("Monday, January 2, 2006"))
	if p := s.User.Profile; p != nil {
		_, _ = color.New(color.Faint).Fprintf(pp.Writer(), "Level %d · %d XP · %d day streak\n", p.Level, p.XP, p.CurrentStreak)
	}
	pp.NewLine()
	pp.Quote(planner.QuoteOfTheDay(now))
	pp.Week(t.On)

	pp.TitleWithCount("Tasks", len(d.Tasks), "task")
	pp.Tasks(d.Tasks...)
	pp.Progress(planner.Progress(d.Tasks))

	pp.TitleWithCount("Goals", len(d.Goals), "goal")
	pp.Goals(d.Goals...)

	pp.Title("Schedule")
	pp.Schedule(planner.Schedule(s.Events, t.On), true)

	pp.Title("Notes")
	pp.Note(planner.NoteFor(s.Notes, t.On))
	return nil
}

// Greeting picks the salutation for the hour of now.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
