package app

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"testing"
	"time"

	"tableflip.dev/willow/pkg/api"
	"tableflip.dev/willow/pkg/api/apitest"
	"tableflip.dev/willow/pkg/notify"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/store"
)

var (
	ctx   = context.Background()
	day   = planner.NewDate(2025, time.March, 4)
	start = time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)
)

type harness struct {
	c       *Controller
	srv     *apitest.Server
	session *store.Session
	clock   time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{srv: apitest.New(), session: store.NewSession(store.NewMemory()), clock: start}
	t.Cleanup(h.srv.Close)
	h.srv.AddUser("ada", "ada@example.com", "pw")

	gw, err := api.New(api.Options{BaseURL: h.srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	n := notify.New(3 * time.Second)
	n.Now = func() time.Time { return h.clock }
	h.c, err = New(Config{
		Gateway:       gw,
		Session:       h.session,
		Notifier:      n,
		CheerDuration: 4 * time.Second,
		Rand:          rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	if err := h.c.Login(ctx, planner.Credentials{Username: "ada", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func (h *harness) message(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := h.c.Notifier().Current()
	if !ok {
		t.Fatalf("expected a notification")
	}
	return n
}

func TestLoginLoadsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	s := h.c.Snapshot()
	if !s.Authenticated || s.User.Username != "ada" {
		t.Fatalf("unexpected state %+v", s)
	}
	if tok, ok, _ := h.session.Restore(); !ok || tok == "" {
		t.Fatalf("token not persisted")
	}
	if got := h.message(t).Text; got != "Welcome back!" {
		t.Fatalf("notification = %q", got)
	}
	for _, path := range []string{"/auth/users/me/", "/api/tasks/", "/api/categories/"} {
		if n := h.srv.Count(http.MethodGet, path); n != 1 {
			t.Fatalf("GET %s count = %d", path, n)
		}
	}
}

func TestLoginWithCannedServer(t *testing.T) {
	h := newHarness(t)
	h.srv.Respond(http.MethodPost, "/auth/jwt/create/", http.StatusOK, `{"access":"tok123"}`)
	h.srv.Respond(http.MethodGet, "/auth/users/me/", http.StatusOK, `{"id":1,"username":"alice","email":"a@x.com"}`)
	h.srv.Respond(http.MethodGet, "/api/tasks/", http.StatusOK, `[{"id":7,"title":"Write report","due_date":"2025-03-04","priority":"H","completed":false}]`)
	h.srv.Respond(http.MethodGet, "/api/categories/", http.StatusOK, `[]`)

	if err := h.c.Login(ctx, planner.Credentials{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	s := h.c.Snapshot()
	if !s.Authenticated {
		t.Fatalf("expected authenticated")
	}
	if s.User.ID != 1 || s.User.Username != "alice" || s.User.Email != "a@x.com" {
		t.Fatalf("user = %+v", s.User)
	}
	if len(s.Tasks) != 1 || s.Tasks[0].ID != 7 || s.Tasks[0].Priority != planner.PriorityHigh {
		t.Fatalf("tasks = %+v", s.Tasks)
	}
	if tok, _, _ := h.session.Restore(); tok != "tok123" {
		t.Fatalf("persisted token = %q", tok)
	}
	for _, r := range h.srv.Requests()[1:] {
		if r.Token != "tok123" {
			t.Fatalf("%s %s sent token %q", r.Method, r.Path, r.Token)
		}
	}
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t)
	err := h.c.Login(ctx, planner.Credentials{Username: "ada", Password: "wrong"})
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if h.c.Authenticated() {
		t.Fatalf("expected unauthenticated")
	}
	if got := h.message(t); got.Text != "Authentication failed." || got.Kind != notify.Error {
		t.Fatalf("notification = %+v", got)
	}
}

func TestLoginLoadFailureLeavesNoPartialSession(t *testing.T) {
	h := newHarness(t)
	h.srv.FailNext(http.MethodGet, "/api/categories/", http.StatusInternalServerError)

	if err := h.c.Login(ctx, planner.Credentials{Username: "ada", Password: "pw"}); err == nil {
		t.Fatalf("expected error")
	}
	s := h.c.Snapshot()
	if s.Authenticated || s.User.Username != "" || s.Tasks != nil {
		t.Fatalf("partial state leaked: %+v", s)
	}
	if _, ok, _ := h.session.Restore(); ok {
		t.Fatalf("token must be cleared")
	}
}

func TestLogoutThenLoginRestoresTasks(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	const n = 3
	for i := 0; i < n; i++ {
		if err := h.c.AddTask(ctx, planner.NewTask{Title: "task " + strconv.Itoa(i), DueDate: day}); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}
	if got := len(h.c.Snapshot().Tasks); got != n {
		t.Fatalf("tasks = %d", got)
	}

	if err := h.c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	s := h.c.Snapshot()
	if s.Authenticated || len(s.Tasks) != 0 || len(s.Categories) != 0 || s.User.ID != 0 {
		t.Fatalf("state after logout: %+v", s)
	}
	if _, ok, _ := h.session.Restore(); ok {
		t.Fatalf("session not cleared")
	}
	if got := h.message(t).Text; got != "Goodbye!" {
		t.Fatalf("notification = %q", got)
	}

	h.login(t)
	if got := len(h.c.Snapshot().Tasks); got != n {
		t.Fatalf("tasks after re-login = %d", got)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	if err := h.c.AddTask(ctx, planner.NewTask{Title: "stretch", DueDate: day}); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := h.c.Snapshot().Tasks[0].ID

	if err := h.c.ToggleTask(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !h.c.Snapshot().Tasks[0].Completed {
		t.Fatalf("expected completed after first toggle")
	}
	cheer := h.message(t)
	if cheer.Kind != notify.Success || h.c.Notifier().Until(cheer.Seq) != 4*time.Second {
		t.Fatalf("cheer = %+v", cheer)
	}
	if xp := h.c.Snapshot().User.Profile.XP; xp == 0 {
		t.Fatalf("profile not refreshed after completion")
	}

	if err := h.c.ToggleTask(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if h.c.Snapshot().Tasks[0].Completed {
		t.Fatalf("expected not completed after second toggle")
	}
	if h.srv.Tasks("ada")[0].Completed {
		t.Fatalf("server disagrees")
	}
}

func TestToggleUnknownTask(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	if err := h.c.ToggleTask(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnauthorizedLogsOut(t *testing.T) {
	ops := map[string]func(c *Controller) error{
		"refresh tasks":   func(c *Controller) error { return c.RefreshTasks(ctx) },
		"refresh planner": func(c *Controller) error { return c.RefreshPlanner(ctx) },
		"add task":        func(c *Controller) error { return c.AddTask(ctx, planner.NewTask{Title: "x", DueDate: day}) },
		"add goal":        func(c *Controller) error { return c.AddGoal(ctx, "focus", day) },
		"change email":    func(c *Controller) error { return c.ChangeEmail(ctx, "new@example.com") },
		"save note":       func(c *Controller) error { return c.SaveNote(ctx, day, "hi") },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.login(t)
			if err := h.c.AddTask(ctx, planner.NewTask{Title: "keep", DueDate: day}); err != nil {
				t.Fatalf("add: %v", err)
			}
			h.srv.RevokeTokens()

			if err := op(h.c); !api.IsUnauthorized(err) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			s := h.c.Snapshot()
			if s.Authenticated || len(s.Tasks) != 0 || s.User.Username != "" {
				t.Fatalf("state not cleared: %+v", s)
			}
			if _, ok, _ := h.session.Restore(); ok {
				t.Fatalf("session not cleared")
			}
		})
	}
}

func TestOtherFailuresKeepState(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	if err := h.c.AddTask(ctx, planner.NewTask{Title: "keep", DueDate: day}); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.srv.FailNext(http.MethodGet, "/api/tasks/", http.StatusBadGateway)

	if err := h.c.RefreshTasks(ctx); err == nil {
		t.Fatalf("expected error")
	}
	s := h.c.Snapshot()
	if !s.Authenticated || len(s.Tasks) != 1 {
		t.Fatalf("state changed: %+v", s)
	}
	if got := h.message(t); got.Kind != notify.Error || got.Text != "Could not load tasks." {
		t.Fatalf("notification = %+v", got)
	}
}

func TestServerValidationMessage(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.srv.Respond(http.MethodPost, "/api/tasks/", http.StatusBadRequest, `{"title":["Title is too spooky."]}`)

	err := h.c.AddTask(ctx, planner.NewTask{Title: "boo", DueDate: day})
	if k, _ := api.KindOf(err); k != api.ValidationFailure {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if got := h.message(t).Text; got != "Failed to add task. Title is too spooky." {
		t.Fatalf("notification = %q", got)
	}
}

func TestDeclinedDeleteSendsNothing(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	if err := h.c.AddTask(ctx, planner.NewTask{Title: "keep me", DueDate: day}); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := h.c.Snapshot().Tasks[0].ID

	var asked string
	err := h.c.DeleteTask(ctx, id, func(prompt string) bool {
		asked = prompt
		return false
	})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if asked != `Delete task "keep me"?` {
		t.Fatalf("prompt = %q", asked)
	}
	if n := h.srv.Count(http.MethodDelete, "/api/tasks/"+strconv.Itoa(id)+"/"); n != 0 {
		t.Fatalf("DELETE issued %d times", n)
	}
	if got := len(h.c.Snapshot().Tasks); got != 1 {
		t.Fatalf("tasks = %d", got)
	}

	if err := h.c.DeleteTask(ctx, id, Confirmed); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(h.c.Snapshot().Tasks); got != 0 {
		t.Fatalf("tasks after delete = %d", got)
	}
}

func TestPlannerMutations(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	if err := h.c.AddGoal(ctx, "Ship it", day); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	nine, _ := planner.ParseClock("09:00")
	half, _ := planner.ParseClock("09:30")
	if err := h.c.AddEvent(ctx, planner.NewScheduleEvent{Title: "Standup", Date: day, StartTime: &nine}); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if err := h.c.AddEvent(ctx, planner.NewScheduleEvent{Title: "Coffee", Date: day, StartTime: &half}); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if err := h.c.SaveNote(ctx, day, "first"); err != nil {
		t.Fatalf("save note: %v", err)
	}
	if err := h.c.SaveNote(ctx, day, "second"); err != nil {
		t.Fatalf("save note: %v", err)
	}

	s := h.c.Snapshot()
	if len(s.Goals) != 1 || len(s.Events) != 2 || len(s.Notes) != 1 || s.Notes[0].Content != "second" {
		t.Fatalf("planner state = %+v", s)
	}
	if h.srv.Count(http.MethodPatch, "/api/notes/"+strconv.Itoa(s.Notes[0].ID)+"/") != 1 {
		t.Fatalf("second save should update the existing note")
	}

	slot := planner.Schedule(s.Events, day)[9]
	if slot.Event == nil || slot.Event.Title != "Standup" {
		t.Fatalf("slot 9 = %+v", slot.Event)
	}

	goalID := s.Goals[0].ID
	if err := h.c.ToggleGoal(ctx, goalID); err != nil {
		t.Fatalf("toggle goal: %v", err)
	}
	if !h.c.Snapshot().Goals[0].Completed {
		t.Fatalf("goal not completed")
	}
	if err := h.c.DeleteGoal(ctx, goalID, func(string) bool { return false }); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if err := h.c.DeleteEvent(ctx, s.Events[1].ID, Confirmed); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if got := len(h.c.Snapshot().Events); got != 1 {
		t.Fatalf("events = %d", got)
	}
}

func TestResume(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		h := newHarness(t)
		if err := h.c.Resume(ctx); err != nil {
			t.Fatalf("resume: %v", err)
		}
		if h.c.Authenticated() || len(h.srv.Requests()) != 0 {
			t.Fatalf("expected no session and no requests")
		}
	})
	t.Run("valid token", func(t *testing.T) {
		h := newHarness(t)
		_ = h.session.Save(h.srv.Token("ada"))
		if err := h.c.Resume(ctx); err != nil {
			t.Fatalf("resume: %v", err)
		}
		if s := h.c.Snapshot(); !s.Authenticated || s.User.Username != "ada" {
			t.Fatalf("state = %+v", s)
		}
	})
	t.Run("expired token", func(t *testing.T) {
		h := newHarness(t)
		_ = h.session.Save(h.srv.ExpiredToken("ada"))
		if err := h.c.Resume(ctx); err != nil {
			t.Fatalf("resume: %v", err)
		}
		if h.c.Authenticated() || len(h.srv.Requests()) != 0 {
			t.Fatalf("expired token should be dropped without a request")
		}
		if _, ok, _ := h.session.Restore(); ok {
			t.Fatalf("expired token not cleared")
		}
	})
	t.Run("revoked token", func(t *testing.T) {
		h := newHarness(t)
		_ = h.session.Save(h.srv.Token("ada"))
		h.srv.RevokeTokens()
		if err := h.c.Resume(ctx); !api.IsUnauthorized(err) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if _, ok, _ := h.session.Restore(); ok {
			t.Fatalf("revoked token not cleared")
		}
	})
	t.Run("server down", func(t *testing.T) {
		h := newHarness(t)
		_ = h.session.Save(h.srv.Token("ada"))
		h.srv.FailNext(http.MethodGet, "/auth/users/me/", http.StatusServiceUnavailable)
		if err := h.c.Resume(ctx); err == nil {
			t.Fatalf("expected error")
		}
		if h.c.Authenticated() {
			t.Fatalf("expected unauthenticated")
		}
		if _, ok, _ := h.session.Restore(); !ok {
			t.Fatalf("token should survive a transient failure")
		}
	})
}

func TestStaleReadAfterLogoutIsDropped(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	if err := h.c.AddTask(ctx, planner.NewTask{Title: "secret", DueDate: day}); err != nil {
		t.Fatalf("add: %v", err)
	}
	hold := h.srv.HoldNext(http.MethodGet, "/api/tasks/")

	done := make(chan error, 1)
	go func() { done <- h.c.RefreshTasks(ctx) }()
	<-hold.Arrived
	if err := h.c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	hold.Release()
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if s := h.c.Snapshot(); s.Authenticated || len(s.Tasks) != 0 {
		t.Fatalf("stale response resurrected state: %+v", s)
	}
}

func TestWriteLandingAfterLogoutIsDropped(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	hold := h.srv.HoldNext(http.MethodPost, "/api/tasks/")

	done := make(chan error, 1)
	go func() { done <- h.c.AddTask(ctx, planner.NewTask{Title: "late", DueDate: day}) }()
	<-hold.Arrived
	if err := h.c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	lists := h.srv.Count(http.MethodGet, "/api/tasks/")
	hold.Release()

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("got %v, want %v", err, ErrSuperseded)
	}
	if got := h.srv.Count(http.MethodGet, "/api/tasks/"); got != lists {
		t.Fatalf("reloaded tasks for an ended session: %d requests, want %d", got, lists)
	}
	if n := h.message(t); n.Text != "Goodbye!" {
		t.Fatalf("notification = %q, want Goodbye!", n.Text)
	}
	if s := h.c.Snapshot(); s.Authenticated || len(s.Tasks) != 0 {
		t.Fatalf("late write resurrected state: %+v", s)
	}
}

func TestFailureAfterLogoutIsQuiet(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	hold := h.srv.HoldNext(http.MethodPost, "/api/focus-items/")
	h.srv.Respond(http.MethodPost, "/api/focus-items/", http.StatusInternalServerError, `{"detail":"boom"}`)

	done := make(chan error, 1)
	go func() { done <- h.c.AddGoal(ctx, "late", day) }()
	<-hold.Arrived
	if err := h.c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	hold.Release()

	if err := <-done; err == nil {
		t.Fatalf("expected the server error")
	}
	if n := h.message(t); n.Text != "Goodbye!" {
		t.Fatalf("notification = %q, want Goodbye!", n.Text)
	}
}

func TestOlderReadDoesNotOverwriteNewer(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	hold := h.srv.HoldNext(http.MethodGet, "/api/tasks/")
	h.srv.Respond(http.MethodGet, "/api/tasks/", http.StatusOK, `[]`)

	done := make(chan error, 1)
	go func() { done <- h.c.RefreshTasks(ctx) }()
	<-hold.Arrived

	if err := h.c.AddTask(ctx, planner.NewTask{Title: "newer", DueDate: day}); err != nil {
		t.Fatalf("add: %v", err)
	}
	hold.Release()
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := len(h.c.Snapshot().Tasks); got != 1 {
		t.Fatalf("older empty list overwrote newer one, tasks = %d", got)
	}
}

func TestUnauthorizedFromOldSessionIgnored(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	hold := h.srv.HoldNext(http.MethodGet, "/api/tasks/")
	h.srv.Respond(http.MethodGet, "/api/tasks/", http.StatusUnauthorized, `{"detail":"Token expired"}`)

	done := make(chan error, 1)
	go func() { done <- h.c.RefreshTasks(ctx) }()
	<-hold.Arrived
	if err := h.c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	h.login(t)
	hold.Release()
	<-done

	if !h.c.Authenticated() {
		t.Fatalf("a 401 from the previous session logged out the new one")
	}
}

func TestAccountOperations(t *testing.T) {
	h := newHarness(t)

	if err := h.c.Register(ctx, planner.Registration{Username: "bo", Email: "bo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if h.c.Authenticated() || h.message(t).Text != "Account created! Please login." {
		t.Fatalf("register should not log in")
	}
	if err := h.c.RequestPasswordReset(ctx, "bo@example.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	h.login(t)
	if err := h.c.ChangeEmail(ctx, "lovelace@example.com"); err != nil {
		t.Fatalf("change email: %v", err)
	}
	if got := h.c.Snapshot().User.Email; got != "lovelace@example.com" {
		t.Fatalf("email = %q", got)
	}

	err := h.c.ChangePassword(ctx, planner.PasswordChange{CurrentPassword: "pw", NewPassword: "a", ReNewPassword: "b"})
	if k, _ := api.KindOf(err); k != api.ValidationFailure {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if h.message(t).Text != "Passwords do not match" {
		t.Fatalf("notification = %q", h.message(t).Text)
	}
	if n := h.srv.Count(http.MethodPost, "/auth/users/set_password/"); n != 0 {
		t.Fatalf("mismatched passwords were sent")
	}
	if err := h.c.ChangePassword(ctx, planner.PasswordChange{CurrentPassword: "pw", NewPassword: "new", ReNewPassword: "new"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if h.srv.Password("ada") != "new" {
		t.Fatalf("password not changed")
	}
}

func TestRequiresLogin(t *testing.T) {
	h := newHarness(t)
	if err := h.c.AddTask(ctx, planner.NewTask{Title: "x"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if err := h.c.RefreshPlanner(ctx); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
