// Package app holds the planner's client-side state. The Controller is the
// only component that talks to the Gateway and the Session Store; command line
// runners and the terminal UI both drive it and render its Snapshot.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/api"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
)

var (
	ErrNotAuthenticated = errors.New("app: not logged in")
	ErrCancelled        = errors.New("app: cancelled")
	ErrNotFound         = errors.New("app: not found")
	// ErrSuperseded means a logout or another login happened while the
	// operation was in flight; its result was dropped.
	ErrSuperseded = errors.New("app: superseded by a newer session")
)

// Gateway is the remote API as the Controller uses it.
type Gateway interface {
	Login(ctx context.Context, creds planner.Credentials) (string, error)
	Register(ctx context.Context, reg planner.Registration) (planner.User, error)
	Profile(ctx context.Context, token string) (planner.User, error)
	UpdateEmail(ctx context.Context, token string, in planner.EmailChange) (planner.User, error)
	RequestPasswordReset(ctx context.Context, in planner.PasswordReset) error
	SetPassword(ctx context.Context, token string, in planner.PasswordChange) error

	ListTasks(ctx context.Context, token string, f api.TaskFilter) ([]planner.Task, error)
	CreateTask(ctx context.Context, token string, in planner.NewTask) (planner.Task, error)
	UpdateTask(ctx context.Context, token string, id int, patch planner.TaskPatch) (planner.Task, error)
	DeleteTask(ctx context.Context, token string, id int) error
	ListCategories(ctx context.Context, token string) ([]planner.Category, error)
	CreateCategory(ctx context.Context, token string, in planner.NewCategory) (planner.Category, error)

	ListFocusItems(ctx context.Context, token string) ([]planner.FocusItem, error)
	CreateFocusItem(ctx context.Context, token string, in planner.NewFocusItem) (planner.FocusItem, error)
	UpdateFocusItem(ctx context.Context, token string, id int, patch planner.FocusItemPatch) (planner.FocusItem, error)
	DeleteFocusItem(ctx context.Context, token string, id int) error
	ListScheduleEvents(ctx context.Context, token string) ([]planner.ScheduleEvent, error)
	CreateScheduleEvent(ctx context.Context, token string, in planner.NewScheduleEvent) (planner.ScheduleEvent, error)
	DeleteScheduleEvent(ctx context.Context, token string, id int) error
	ListNotes(ctx context.Context, token string) ([]planner.Note, error)
	CreateNote(ctx context.Context, token string, in planner.NoteInput) (planner.Note, error)
	UpdateNote(ctx context.Context, token string, id int, in planner.NoteInput) (planner.Note, error)
}

// SessionStore persists the access token.
type SessionStore interface {
	Restore() (string, bool, error)
	Save(token string) error
	Clear() error
}

// Confirm asks the user to approve a destructive action.
type Confirm func(prompt string) bool

// Confirmed approves every prompt.
func Confirmed(string) bool { return true }

type Config struct {
	Gateway  Gateway
	Session  SessionStore
	Notifier *notify.Notifier
	Logger   *zap.Logger
	// CheerDuration is how long the message for a completed task stays up.
	CheerDuration time.Duration
	Rand          *rand.Rand
	Now           func() time.Time
}

// State is a point-in-time copy of everything the Controller knows.
type State struct {
	Authenticated bool
	User          planner.User
	Tasks         []planner.Task
	Categories    []planner.Category
	Goals         []planner.FocusItem
	Events        []planner.ScheduleEvent
	Notes         []planner.Note
}

type collection int

const (
	colUser collection = iota
	colTasks
	colCategories
	colGoals
	colEvents
	colNotes
	numCollections
)

type Controller struct {
	gw       Gateway
	session  SessionStore
	notifier *notify.Notifier
	log      *zap.Logger
	cheerFor time.Duration
	now      func() time.Time

	mu      sync.Mutex
	rnd     *rand.Rand
	token   string
	epoch   uint64
	started [numCollections]uint64
	applied [numCollections]uint64
	state   State
}

func New(cfg Config) (*Controller, error) {
	if cfg.Gateway == nil {
		return nil, errors.New("app: no gateway configured")
	}
	if cfg.Session == nil {
		return nil, errors.New("app: no session store configured")
	}
	c := &Controller{
		gw:       cfg.Gateway,
		session:  cfg.Session,
		notifier: cfg.Notifier,
		log:      cfg.Logger,
		cheerFor: cfg.CheerDuration,
		now:      cfg.Now,
		rnd:      cfg.Rand,
	}
	if c.notifier == nil {
		c.notifier = notify.New(notify.DefaultDuration)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(c.now().UnixNano()))
	}
	if c.cheerFor <= 0 {
		c.cheerFor = c.notifier.Duration
	}
	if c.cheerFor <= 0 {
		c.cheerFor = notify.DefaultDuration
	}
	return c, nil
}

func (c *Controller) Notifier() *notify.Notifier {
	return c.notifier
}

// Authenticated reports whether a session is active.
func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Authenticated
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		Authenticated: c.state.Authenticated,
		User:          c.state.User,
		Tasks:         append([]planner.Task(nil), c.state.Tasks...),
		Categories:    append([]planner.Category(nil), c.state.Categories...),
		Goals:         append([]planner.FocusItem(nil), c.state.Goals...),
		Events:        append([]planner.ScheduleEvent(nil), c.state.Events...),
		Notes:         append([]planner.Note(nil), c.state.Notes...),
	}
	if c.state.User.Profile != nil {
		stats := *c.state.User.Profile
		s.User.Profile = &stats
	}
	for i, t := range s.Tasks {
		s.Tasks[i].StartTime = cloneClock(t.StartTime)
		s.Tasks[i].EndTime = cloneClock(t.EndTime)
		if t.Category != nil {
			id := *t.Category
			s.Tasks[i].Category = &id
		}
	}
	for i, e := range s.Events {
		s.Events[i].EndTime = cloneClock(e.EndTime)
	}
	return s
}

func cloneClock(c *planner.Clock) *planner.Clock {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// auth returns the active token and the session epoch it belongs to.
func (c *Controller) auth() (string, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Authenticated || c.token == "" {
		return "", 0, ErrNotAuthenticated
	}
	return c.token, c.epoch, nil
}

// begin records the start of a read of col and returns its sequence number.
func (c *Controller) begin(col collection) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started[col]++
	return c.started[col]
}

// apply stores the result of a read unless the session changed or a newer
// read of the same collection already landed.
func (c *Controller) apply(epoch, seq uint64, col collection, set func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(epoch, seq, col, set)
}

func (c *Controller) applyLocked(epoch, seq uint64, col collection, set func(*State)) bool {
	if epoch != c.epoch || seq <= c.applied[col] {
		c.log.Debug("dropping stale result", zap.Int("collection", int(col)), zap.Uint64("seq", seq))
		return false
	}
	c.applied[col] = seq
	set(&c.state)
	return true
}

// fail applies the failure policy: Unauthorized ends the session it was
// issued under; anything else is reported and leaves state untouched.
func (c *Controller) fail(epoch uint64, err error, msg string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if api.IsUnauthorized(err) {
		c.expire(epoch)
		return err
	}
	if c.settled(epoch) != nil {
		c.log.Debug("dropping failure from an ended session", zap.String("op", msg), zap.Error(err))
		return err
	}
	c.log.Warn(msg, zap.Error(err))
	c.notifier.Show(notify.Error, describe(msg, err))
	return err
}

// settled returns ErrSuperseded once the session epoch belongs to has ended.
// A write that lands after that is neither announced nor followed by a reload.
func (c *Controller) settled(epoch uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSuperseded
	}
	return nil
}

// expire logs out if epoch is still the active session.
func (c *Controller) expire(epoch uint64) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.resetLocked()
	err := c.session.Clear()
	c.mu.Unlock()
	if err != nil {
		c.log.Error("clear session", zap.Error(err))
	}
	c.log.Info("session expired")
	c.notifier.Show(notify.Error, "Your session has expired. Please log in again.")
}

func (c *Controller) resetLocked() {
	c.epoch++
	c.token = ""
	c.state = State{}
}

// describe prefers the server's reason for a rejected request.
func describe(msg string, err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.ValidationFailure {
		if reason := apiErr.Message(); reason != "" {
			return fmt.Sprintf("%s %s", msg, reason)
		}
	}
	return msg
}

func (c *Controller) cheer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return planner.Cheer(c.rnd)
}
