package commands

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"tableflip.dev/willow/pkg/api/apitest"
)

type cli struct {
	t   *testing.T
	srv *apitest.Server
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("ada", "ada@example.com", "pw")

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("WILLOW_CONFIG_PATH", dir)
	t.Setenv("WILLOW_PATH", dir)
	t.Setenv("WILLOW_API_URL", srv.URL)
	return &cli{t: t, srv: srv}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("willow %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

type listedTask struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (c *cli) tasks(args ...string) []listedTask {
	c.t.Helper()
	out := c.mustRun(append([]string{"task", "list", "-o", "json"}, args...)...)
	var got []listedTask
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		c.t.Fatalf("decode %q: %v", out, err)
	}
	return got
}

func TestNeedsLogin(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("task", "list"); err != errNotLoggedIn {
		t.Fatalf("got %v, want %v", err, errNotLoggedIn)
	}
}

func TestLoginAddListLogout(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--username", "ada", "--password", "pw")

	c.mustRun("task", "add", "Water", "the", "plants", "--on", "2025-3-4")
	c.mustRun("task", "add", "Standup", "--on", "2025-3-4", "--start", "09:30", "--end", "09:45")
	c.mustRun("task", "add", "Later", "--on", "2025-3-5")

	got := c.tasks("--on", "2025-3-4")
	if len(got) != 2 {
		t.Fatalf("got %d tasks on the day, want 2: %+v", len(got), got)
	}
	if all := c.tasks("--all"); len(all) != 3 {
		t.Fatalf("got %d tasks in total, want 3", len(all))
	}

	c.mustRun("task", "done", strconv.Itoa(got[0].ID))
	if pending := c.tasks("--on", "2025-3-4", "--pending"); len(pending) != 1 {
		t.Fatalf("got %d pending tasks, want 1", len(pending))
	}

	c.mustRun("logout")
	if _, err := c.run("task", "list"); err != errNotLoggedIn {
		t.Fatalf("after logout got %v, want %v", err, errNotLoggedIn)
	}
}

func TestFailedLogin(t *testing.T) {
	c := newCLI(t)
	if _, err := c.run("login", "--username", "ada", "--password", "nope"); err == nil {
		t.Fatalf("expected login to fail")
	}
	if _, err := c.run("whoami"); err != errNotLoggedIn {
		t.Fatalf("got %v, want %v", err, errNotLoggedIn)
	}
}

func TestDeleteWithoutTerminalIsDeclined(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "--username", "ada", "--password", "pw")
	c.mustRun("task", "add", "Keep", "me", "--on", "2025-3-4")

	got := c.tasks("--all")
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}
	id := strconv.Itoa(got[0].ID)

	if _, err := c.run("task", "delete", id); err == nil {
		t.Fatalf("expected the delete to be declined")
	}
	if got := c.tasks("--all"); len(got) != 1 {
		t.Fatalf("task was deleted without confirmation")
	}

	c.mustRun("task", "delete", id, "--yes")
	if got := c.tasks("--all"); len(got) != 0 {
		t.Fatalf("got %d tasks after delete, want 0", len(got))
	}
}

func TestThemePersists(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("theme"); !strings.Contains(out, "light") {
		t.Fatalf("default theme: %q", out)
	}
	c.mustRun("theme", "dark")
	if out := c.mustRun("theme"); !strings.Contains(out, "dark") {
		t.Fatalf("theme after set: %q", out)
	}
	if _, err := c.run("theme", "sepia"); err == nil {
		t.Fatalf("expected an unknown theme to be rejected")
	}
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("version", "--short"); !strings.Contains(out, "dev") {
		t.Fatalf("version: %q", out)
	}
}
