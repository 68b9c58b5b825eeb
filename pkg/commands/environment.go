package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/api"
	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/config"
	"tableflip.dev/willow/pkg/logging"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/store"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run `willow login` first")
	errSessionExpired = errors.New("session expired, run `willow login` again")
)

// environment holds what the commands share: settings, the log, the local
// store and, once connected, the controller.
type environment struct {
	config      *config.Config
	logger      *zap.Logger
	disk        *store.Disk
	session     *store.Session
	preferences *store.Preferences
	controller  *app.Controller
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	disk, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &environment{
		config:      cfg,
		logger:      logger,
		disk:        disk,
		session:     store.NewSession(disk),
		preferences: store.NewPreferences(disk),
	}, nil
}

// connect builds the controller over the planner client.
func (e *environment) connect() error {
	client, err := api.New(api.Options{
		BaseURL: e.config.APIURL,
		Timeout: e.config.Timeout,
		Logger:  e.logger,
	})
	if err != nil {
		return err
	}
	e.controller, err = app.New(app.Config{
		Gateway:       client,
		Session:       e.session,
		Notifier:      notify.New(e.config.NotifyFor),
		Logger:        e.logger,
		CheerDuration: e.config.CheerFor,
	})
	return err
}

// resume connects and restores the saved session, failing when there is none.
func (e *environment) resume(ctx context.Context) error {
	if err := e.connect(); err != nil {
		return err
	}
	if err := e.controller.Resume(ctx); err != nil {
		if api.IsUnauthorized(err) {
			return errSessionExpired
		}
		return fmt.Errorf("resume session: %w", err)
	}
	if !e.controller.Authenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (e *environment) close() {
	_ = logging.Sync(e.logger)
}

// withSession runs fn against a resumed session. Errors are reported the way
// the output flag asks for.
func withSession(cmd *cobra.Command, out *options.OutputOptions, fn func(ctx context.Context, e *environment) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := loadEnvironment()
	if err != nil {
		return out.HandleError(err)
	}
	defer e.close()
	if err := e.resume(ctx); err != nil {
		return out.HandleError(err)
	}
	return out.HandleError(fn(ctx, e))
}

// withEnvironment runs fn without touching the network.
func withEnvironment(cmd *cobra.Command, out *options.OutputOptions, fn func(ctx context.Context, e *environment) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := loadEnvironment()
	if err != nil {
		return out.HandleError(err)
	}
	defer e.close()
	return out.HandleError(fn(ctx, e))
}
