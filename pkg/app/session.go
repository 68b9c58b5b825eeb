package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/api"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
)

type sessionData struct {
	user       planner.User
	tasks      []planner.Task
	categories []planner.Category
	seqs       [numCollections]uint64
}

// loadSession fetches what an authenticated session needs, in order.
func (c *Controller) loadSession(ctx context.Context, token string) (*sessionData, error) {
	d := &sessionData{}
	var err error
	d.seqs[colUser] = c.begin(colUser)
	if d.user, err = c.gw.Profile(ctx, token); err != nil {
		return nil, err
	}
	d.seqs[colTasks] = c.begin(colTasks)
	if d.tasks, err = c.gw.ListTasks(ctx, token, api.TaskFilter{}); err != nil {
		return nil, err
	}
	d.seqs[colCategories] = c.begin(colCategories)
	if d.categories, err = c.gw.ListCategories(ctx, token); err != nil {
		return nil, err
	}
	return d, nil
}

// commit makes the session visible in one step.
func (c *Controller) commit(epoch uint64, token string, d *sessionData) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return false
	}
	c.token = token
	c.state = State{
		Authenticated: true,
		User:          d.user,
		Tasks:         d.tasks,
		Categories:    d.categories,
	}
	for _, col := range []collection{colUser, colTasks, colCategories} {
		if d.seqs[col] > c.applied[col] {
			c.applied[col] = d.seqs[col]
		}
	}
	return true
}

// startSession invalidates whatever session was active and returns the epoch
// of the new one.
func (c *Controller) startSession() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	return c.epoch
}

// Resume restores a persisted session at startup. An expired token is
// discarded without a request. A rejected token logs out; any other failure
// leaves the token on disk for the next attempt.
func (c *Controller) Resume(ctx context.Context) error {
	token, ok, err := c.session.Restore()
	if err != nil {
		c.log.Error("restore session", zap.Error(err))
		return err
	}
	if !ok {
		return nil
	}
	if exp, ok := api.TokenExpiry(token); ok && !exp.After(c.now()) {
		c.log.Info("saved token expired", zap.Time("exp", exp))
		return c.session.Clear()
	}

	epoch := c.startSession()
	d, err := c.loadSession(ctx, token)
	if err != nil {
		if api.IsUnauthorized(err) {
			c.expire(epoch)
			return err
		}
		c.log.Warn("resume session", zap.Error(err))
		c.notifier.Show(notify.Error, "Could not reach the planner.")
		return err
	}
	if !c.commit(epoch, token, d) {
		return ErrSuperseded
	}
	c.log.Info("session resumed", zap.String("user", d.user.Username))
	return nil
}

// Login authenticates, persists the token and loads the profile, tasks and
// categories. The session becomes visible only when all of them succeed.
func (c *Controller) Login(ctx context.Context, creds planner.Credentials) error {
	epoch := c.startSession()
	token, err := c.gw.Login(ctx, creds)
	if err != nil {
		c.log.Info("login rejected", zap.String("user", creds.Username), zap.Error(err))
		c.notifier.Show(notify.Error, "Authentication failed.")
		return err
	}
	if err := c.session.Save(token); err != nil {
		c.log.Error("save session", zap.Error(err))
		c.notifier.Show(notify.Error, "Authentication failed.")
		return err
	}
	d, err := c.loadSession(ctx, token)
	if err != nil {
		c.abandon(epoch)
		c.log.Warn("load session after login", zap.Error(err))
		c.notifier.Show(notify.Error, "Authentication failed.")
		return err
	}
	if !c.commit(epoch, token, d) {
		return ErrSuperseded
	}
	c.log.Info("logged in", zap.String("user", d.user.Username))
	c.notifier.Show(notify.Success, "Welcome back!")
	return nil
}

// abandon drops a half-established session.
func (c *Controller) abandon(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return
	}
	c.resetLocked()
	if err := c.session.Clear(); err != nil {
		c.log.Error("clear session", zap.Error(err))
	}
}

// Logout clears the persisted token and every in-memory collection.
func (c *Controller) Logout() error {
	c.mu.Lock()
	c.resetLocked()
	err := c.session.Clear()
	c.mu.Unlock()
	if err != nil {
		c.log.Error("clear session", zap.Error(err))
	}
	c.log.Info("logged out")
	c.notifier.Show(notify.Info, "Goodbye!")
	return err
}

// Register creates an account. The user still has to log in.
func (c *Controller) Register(ctx context.Context, reg planner.Registration) error {
	if _, err := c.gw.Register(ctx, reg); err != nil {
		c.notifier.Show(notify.Error, describe("Registration failed.", err))
		return err
	}
	c.notifier.Show(notify.Success, "Account created! Please login.")
	return nil
}

func (c *Controller) RequestPasswordReset(ctx context.Context, email string) error {
	if err := c.gw.RequestPasswordReset(ctx, planner.PasswordReset{Email: email}); err != nil {
		c.notifier.Show(notify.Error, "Failed to send reset email.")
		return err
	}
	c.notifier.Show(notify.Success, "Reset link sent to your email.")
	return nil
}

// ChangeEmail updates the account email and reloads the profile.
func (c *Controller) ChangeEmail(ctx context.Context, email string) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if _, err := c.gw.UpdateEmail(ctx, token, planner.EmailChange{Email: email}); err != nil {
		return c.fail(epoch, err, "Failed to update email.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Email updated.")
	return c.refreshProfile(ctx, token, epoch)
}

func (c *Controller) ChangePassword(ctx context.Context, in planner.PasswordChange) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	if err := c.gw.SetPassword(ctx, token, in); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Fields["re_new_password"] != nil && apiErr.Status == 0 {
			c.notifier.Show(notify.Error, "Passwords do not match")
			return err
		}
		return c.fail(epoch, err, "Failed to update password.")
	}
	if err := c.settled(epoch); err != nil {
		return err
	}
	c.notifier.Show(notify.Success, "Password updated.")
	return nil
}

// RefreshProfile reloads the user and their stats.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	token, epoch, err := c.auth()
	if err != nil {
		return err
	}
	return c.refreshProfile(ctx, token, epoch)
}

func (c *Controller) refreshProfile(ctx context.Context, token string, epoch uint64) error {
	if err := c.settled(epoch); err != nil {
		return err
	}
	seq := c.begin(colUser)
	u, err := c.gw.Profile(ctx, token)
	if err != nil {
		return c.fail(epoch, err, "Could not load your profile.")
	}
	c.apply(epoch, seq, colUser, func(s *State) { s.User = u })
	return nil
}
