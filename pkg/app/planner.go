package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
)

// RefreshPlanner reloads goals, schedule events and notes concurrently.
func (c *Controller) RefreshPlanner(ctx context.Context) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	return c.refreshPlanner(ctx, token, epoch)
}

func (c *Controller) refreshPlanner(ctx context.Context, token string, epoch uint64) error {
	if err := c.settled(epoch); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seq := c.begin(colGoals)
		goals, err := c.gw.ListFocusItems(gctx, token)
		if err != nil {
			return err
		}
		c.apply(epoch, seq, colGoals, func(s *State) { s.Goals = goals })
		return nil
	})
	g.Go(func() error {
		seq := c.begin(colEvents)
		events, err := c.gw.ListScheduleEvents(gctx, token)
		if err != nil {
			return err
		}
		c.apply(epoch, seq, colEvents, func(s *State) { s.Events = events })
		return nil
	})
	g.Go(func() error {
		seq := c.begin(colNotes)
		notes, err := c.gw.ListNotes(gctx, token)
		if err != nil {
			return err
		}
		c.apply(epoch, seq, colNotes, func(s *State) { s.Notes = notes })
		return nil
	})
	if err := g.Wait(); err != nil {
		return c.fail(epoch, err, "Could not load your planner.")
	}
	return nil
}

// Refresh reloads everything an authenticated session shows.
func (c *Controller) Refresh(ctx context.Context) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if err := c.refreshProfile(ctx, token, epoch); err != nil {
		return err
	}
	if err := c.refreshTasks(ctx, token, epoch); err != nil {
		return err
	}
	if err := c.refreshCategories(ctx, token, epoch); err != nil {
		return err
	}
	return c.refreshPlanner(ctx, token, epoch)
}

// AddGoal adds a focus item for day.
func (c *Controller) AddGoal(ctx context.Context, text string, day planner.Date) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if _, err := c.gw.CreateFocusItem(ctx, token, planner.NewFocusItem{Text: text, Date: day}); err != nil {
		return c.fail(epoch, err, "Failed to add goal.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Goal added.")
	return c.refreshPlanner(ctx, token, epoch)
}

// ToggleGoal sends the opposite of the completion state currently shown.
func (c *Controller) ToggleGoal(ctx context.Context, id int) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	g, ok := c.goal(id)
	if !ok {
		return fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	done := !g.Completed
	if _, err := c.gw.UpdateFocusItem(ctx, token, id, planner.FocusItemPatch{Completed: planner.Bool(done)}); err != nil {
		return c.fail(epoch, err, "Failed to update goal.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	if done {
		c.notifier.ShowFor(notify.Success, c.cheer(), c.cheerFor)
	}
	return c.refreshPlanner(ctx, token, epoch)
}

func (c *Controller) DeleteGoal(ctx context.Context, id int, confirm Confirm) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete goal %d?", id)
	if g, ok := c.goal(id); ok {
		prompt = fmt.Sprintf("Delete goal %q?", g.Text)
	}
	if confirm != nil && !confirm(prompt) {
		return ErrCancelled
	}
	if err := c.gw.DeleteFocusItem(ctx, token, id); err != nil {
		return c.fail(epoch, err, "Failed to delete goal.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Info, "Goal deleted.")
	return c.refreshPlanner(ctx, token, epoch)
}

func (c *Controller) goal(id int) (planner.FocusItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.state.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return planner.FocusItem{}, false
}

// AddEvent schedules an event.
func (c *Controller) AddEvent(ctx context.Context, in planner.NewScheduleEvent) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if _, err := c.gw.CreateScheduleEvent(ctx, token, in); err != nil {
		return c.fail(epoch, err, "Failed to add event.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Event added.")
	return c.refreshPlanner(ctx, token, epoch)
}

func (c *Controller) DeleteEvent(ctx context.Context, id int, confirm Confirm) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete event %d?", id)
	c.mu.Lock()
	for _, e := range c.state.Events {
		if e.ID == id {
			prompt = fmt.Sprintf("Delete event %q?", e.Title)
		}
	}
	c.mu.Unlock()
	if confirm != nil && !confirm(prompt) {
		return ErrCancelled
	}
	if err := c.gw.DeleteScheduleEvent(ctx, token, id); err != nil {
		return c.fail(epoch, err, "Failed to delete event.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Info, "Event deleted.")
	return c.refreshPlanner(ctx, token, epoch)
}

// SaveNote writes the note for day, creating it on first save.
func (c *Controller) SaveNote(ctx context.Context, day planner.Date, content string) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	c.mu.Lock()
	existing, ok := planner.NoteFor(c.state.Notes, day)
	c.mu.Unlock()

	in := planner.NoteInput{Date: day, Content: content}
	if ok {
		_, err = c.gw.UpdateNote(ctx, token, existing.ID, in)
	} else {
		_, err = c.gw.CreateNote(ctx, token, in)
	}
	if err != nil {
		return c.fail(epoch, err, "Failed to save note.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Note saved.")
	return c.refreshPlanner(ctx, token, epoch)
}
