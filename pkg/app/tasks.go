package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/api"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
)

// RefreshTasks reloads every task.
func (c *Controller) RefreshTasks(ctx context.Context) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	return c.refreshTasks(ctx, token, epoch)
}

func (c *Controller) refreshTasks(ctx context.Context, token string, epoch uint64) error {
	if err := c.settled(epoch); err != nil {
		return err
	}
	seq := c.begin(colTasks)
	tasks, err := c.gw.ListTasks(ctx, token, api.TaskFilter{})
	if err != nil {
		return c.fail(epoch, err, "Could not load tasks.")
	}
	c.apply(epoch, seq, colTasks, func(s *State) { s.Tasks = tasks })
	return nil
}

// AddTask creates a task and reloads the list.
func (c *Controller) AddTask(ctx context.Context, in planner.NewTask) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	t, err := c.gw.CreateTask(ctx, token, in)
	if err != nil {
		return c.fail(epoch, err, "Failed to add task.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.log.Debug("task added", zap.Int("id", t.ID))
	c.notifier.Show(notify.Success, "Task added successfully!")
	return c.refreshTasks(ctx, token, epoch)
}

// SetTaskCompleted sends the desired completion state and reloads the list.
func (c *Controller) SetTaskCompleted(ctx context.Context, id int, completed bool) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if _, err := c.gw.UpdateTask(ctx, token, id, planner.TaskPatch{Completed: planner.Bool(completed)}); err != nil {
		return c.fail(epoch, err, "Failed to update task.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	if completed {
		c.notifier.ShowFor(notify.Success, c.cheer(), c.cheerFor)
	} else {
		c.notifier.Show(notify.Info, "Task reopened.")
	}
	if err := c.refreshTasks(ctx, token, epoch); err != nil {
		return err
	}
	if completed {
		// completing a task changes xp and streak
		return c.refreshProfile(ctx, token, epoch)
	}
	return nil
}

// ToggleTask flips a task using the completion state currently shown.
func (c *Controller) ToggleTask(ctx context.Context, id int) error {
	t, ok := c.task(id)
	if !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return c.SetTaskCompleted(ctx, id, !t.Completed)
}

// DeleteTask removes a task once confirm approves it.
func (c *Controller) DeleteTask(ctx context.Context, id int, confirm Confirm) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	prompt := fmt.Sprintf("Delete task %d?", id)
	if t, ok := c.task(id); ok {
		prompt = fmt.Sprintf("Delete task %q?", t.Title)
	}
	if confirm != nil && !confirm(prompt) {
		return ErrCancelled
	}
	if err := c.gw.DeleteTask(ctx, token, id); err != nil {
		return c.fail(epoch, err, "Failed to delete task.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Info, "Task deleted.")
	return c.refreshTasks(ctx, token, epoch)
}

func (c *Controller) task(id int) (planner.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return planner.Task{}, false
}

// RefreshCategories reloads the category list.
func (c *Controller) RefreshCategories(ctx context.Context) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	return c.refreshCategories(ctx, token, epoch)
}

func (c *Controller) refreshCategories(ctx context.Context, token string, epoch uint64) error {
	if err := c.settled(epoch); err != nil {
		return err
	}
	seq := c.begin(colCategories)
	cats, err := c.gw.ListCategories(ctx, token)
	if err != nil {
		return c.fail(epoch, err, "Could not load categories.")
	}
	c.apply(epoch, seq, colCategories, func(s *State) { s.Categories = cats })
	return nil
}

func (c *Controller) AddCategory(ctx context.Context, name string) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if _, err := c.gw.CreateCategory(ctx, token, planner.NewCategory{Name: name}); err != nil {
		return c.fail(epoch, err, "Failed to add category.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Category added.")
	return c.refreshCategories(ctx, token, epoch)
}
