// Package ui launches the interactive planner.
package ui

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/store"
	"tableflip.dev/willow/pkg/tui"
)

type UI struct {
	Controller  *app.Controller
	Preferences *store.Preferences
	Session     *store.Session
	// Disk is watched so the UI follows changes made by other processes.
	Disk   *store.Disk
	Logger *zap.Logger
}

func (u *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan store.Change
	if u.Disk != nil {
		var err error
		if changes, err = u.Disk.Watch(ctx); err != nil {
			u.logger().Warn("watch store", zap.Error(err))
			changes = nil
		}
	}
	return tui.Run(ctx, tui.Options{
		Controller:  u.Controller,
		Preferences: u.Preferences,
		Session:     u.Session,
		Changes:     changes,
		Logger:      u.logger(),
	})
}

func (u *UI) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
