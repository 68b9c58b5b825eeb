package store

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func openDisk(t *testing.T) *Disk {
	t.Helper()
	d, err := Open(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return d
}

func TestDiskRoundTrip(t *testing.T) {
	d := openDisk(t)

	if _, ok, err := d.Get("session-token"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := d.Set("session-token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := d.Get("session-token")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}

	info, err := os.Stat(filepath.Join(d.BasePath(), "session", "token"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file perm = %o, want 600", perm)
	}

	if err := d.Delete("session-token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := d.Delete("session-token"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(testConfig{path: dir})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := NewSession(d).Save("tok123"); err != nil {
		t.Fatalf("save: %v", err)
	}

	d2, err := Open(testConfig{path: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s := NewSession(d2)
	tok, ok, err := s.Restore()
	if err != nil || !ok || tok != "tok123" {
		t.Fatalf("restore = %q %v %v", tok, ok, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Restore(); ok {
		t.Fatalf("expected cleared session")
	}
}

func TestSessionRejectsEmptyToken(t *testing.T) {
	s := NewSession(NewMemory())
	if err := s.Save("  "); err != ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestThemeNormalisation(t *testing.T) {
	tests := map[string]struct {
		stored string
		set    bool
		want   Theme
		saved  string
	}{
		"missing": {want: Light, saved: "light"},
		"invalid": {stored: "solarized", set: true, want: Light, saved: "light"},
		"dark":    {stored: "dark", set: true, want: Dark, saved: "dark"},
		"upper":   {stored: "DARK", set: true, want: Dark, saved: "dark"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			kv := NewMemory()
			if tc.set {
				_ = kv.Set(themeKey, tc.stored)
			}
			got, err := NewPreferences(kv).Theme()
			if err != nil {
				t.Fatalf("theme: %v", err)
			}
			if got != tc.want {
				t.Fatalf("theme = %q, want %q", got, tc.want)
			}
			if v, _, _ := kv.Get(themeKey); v != tc.saved {
				t.Fatalf("saved = %q, want %q", v, tc.saved)
			}
		})
	}
}

func TestDarkThemeSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	d, _ := Open(testConfig{path: dir})
	if err := NewPreferences(d).SetTheme(Dark); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	d2, _ := Open(testConfig{path: dir})
	got, err := NewPreferences(d2).Theme()
	if err != nil || got != Dark {
		t.Fatalf("theme after restart = %q %v", got, err)
	}
}

func TestToggleTheme(t *testing.T) {
	p := NewPreferences(NewMemory())
	if got, _ := p.ToggleTheme(); got != Dark {
		t.Fatalf("first toggle = %q", got)
	}
	if got, _ := p.ToggleTheme(); got != Light {
		t.Fatalf("second toggle = %q", got)
	}
	if err := p.SetTheme("sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestWatchReportsSessionChange(t *testing.T) {
	d := openDisk(t)
	if err := d.Set("session-token", "a"); err != nil {
		t.Fatalf("set: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := NewSession(d).Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-ch:
			if c.IsSessionKey() {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for session change")
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	var sent atomic.Int32
	th := newThrottle(5 * time.Millisecond)
	defer th.Stop()
	for i := 0; i < 5; i++ {
		th.Enqueue("token", func(Change) { sent.Add(1) })
	}
	deadline := time.Now().Add(time.Second)
	for sent.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if got := sent.Load(); got != 1 {
		t.Fatalf("sent %d changes, want 1", got)
	}
}

func TestThrottleQuietAfterStop(t *testing.T) {
	var sent atomic.Int32
	send := func(Change) { sent.Add(1) }
	th := newThrottle(5 * time.Millisecond)

	th.Enqueue("token", send)
	th.Stop()
	th.Enqueue("theme", send)
	time.Sleep(30 * time.Millisecond)
	if got := sent.Load(); got != 0 {
		t.Fatalf("sent %d changes after Stop, want 0", got)
	}
}

func TestThrottleFlushWaitingOnStopIsDropped(t *testing.T) {
	var sent atomic.Int32
	th := newThrottle(time.Millisecond)
	th.Enqueue("token", func(Change) { sent.Add(1) })

	// The timer fires while the lock is held, leaving flush parked behind it.
	th.mu.Lock()
	time.Sleep(20 * time.Millisecond)
	th.stopped = true
	th.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	if got := sent.Load(); got != 0 {
		t.Fatalf("sent %d changes after Stop, want 0", got)
	}
}
