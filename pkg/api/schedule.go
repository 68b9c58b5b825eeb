package api

import (
	"context"
	"net/http"

	"tableflip.dev/willow/pkg/planner"
)

const (
	pathFocusItems     = "/api/focus-items/"
	pathScheduleEvents = "/api/schedule-events/"
	pathNotes          = "/api/notes/"
)

func (c *Client) ListFocusItems(ctx context.Context, token string) ([]planner.FocusItem, error) {
	return list[planner.FocusItem](ctx, c, token, pathFocusItems, nil)
}

func (c *Client) CreateFocusItem(ctx context.Context, token string, in planner.NewFocusItem) (planner.FocusItem, error) {
	var g planner.FocusItem
	err := c.do(ctx, token, http.MethodPost, pathFocusItems, nil, in, &g)
	return g, err
}

func (c *Client) UpdateFocusItem(ctx context.Context, token string, id int, patch planner.FocusItemPatch) (planner.FocusItem, error) {
	var g planner.FocusItem
	err := c.do(ctx, token, http.MethodPatch, itemPath(pathFocusItems, id), nil, patch, &g)
	return g, err
}

func (c *Client) DeleteFocusItem(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, itemPath(pathFocusItems, id), nil, nil, nil)
}

func (c *Client) ListScheduleEvents(ctx context.Context, token string) ([]planner.ScheduleEvent, error) {
	return list[planner.ScheduleEvent](ctx, c, token, pathScheduleEvents, nil)
}

func (c *Client) CreateScheduleEvent(ctx context.Context, token string, in planner.NewScheduleEvent) (planner.ScheduleEvent, error) {
	var e planner.ScheduleEvent
	err := c.do(ctx, token, http.MethodPost, pathScheduleEvents, nil, in, &e)
	return e, err
}

func (c *Client) DeleteScheduleEvent(ctx context.Context, token string, id int) error {
	return c.do(ctx, token, http.MethodDelete, itemPath(pathScheduleEvents, id), nil, nil, nil)
}

func (c *Client) ListNotes(ctx context.Context, token string) ([]planner.Note, error) {
	return list[planner.Note](ctx, c, token, pathNotes, nil)
}

func (c *Client) CreateNote(ctx context.Context, token string, in planner.NoteInput) (planner.Note, error) {
	var n planner.Note
	err := c.do(ctx, token, http.MethodPost, pathNotes, nil, in, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, token string, id int, in planner.NoteInput) (planner.Note, error) {
	var n planner.Note
	err := c.do(ctx, token, http.MethodPatch, itemPath(pathNotes, id), nil, in, &n)
	return n, err
}
