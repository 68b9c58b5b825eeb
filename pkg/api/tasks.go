package api

import (
	"context"
	"net/http"
	"net/url"

	"tableflip.dev/willow/pkg/planner"
)

const (
	pathTasks      = "/api/tasks/"
	pathCategories = "/api/categories/"
)

// TaskFilter narrows a task listing. The zero value lists everything.
type TaskFilter struct {
	DueDate planner.Date
}

func (f TaskFilter) query() url.Values {
	if f.DueDate.IsZero() {
		return nil
	}
	return url.Values{"due_date": []string{f.DueDate.String()}}
}

func (c *Client) ListTasks(ctx context.Context, token string, f TaskFilter) ([]planner.Task, error) {
	return list[planner.Task](ctx, c, token, pathTasks, f.query())
}

func (c *Client) CreateTask(ctx context.Context, token string, in planner.NewTask) (planner.Task, error) {
	var t planner.Task
	err := c.do(ctx, token, http.MethodPost, pathTasks, nil, in, &t)
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, token string, id int, patch planner.TaskPatch) (planner.Task, error) {
	var t planner.Task
	err := c.do(ctx, token, http.MethodPatch, itemPath(pathTasks, id), nil, patch, &t)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, itemPath(pathTasks, id), nil, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]planner.Category, error) {
	return list[planner.Category](ctx, c, token, pathCategories, nil)
}

func (c *Client) CreateCategory(ctx context.Context, token string, in planner.NewCategory) (planner.Category, error) {
	var cat planner.Category
	err := c.do(ctx, token, http.MethodPost, pathCategories, nil, in, &cat)
	return cat, err
}
