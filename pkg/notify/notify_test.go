package notify

import (
	"testing"
	"time"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func TestNewestReplacesOldest(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	n := New(3 * time.Second)
	n.Now = c.now

	first := n.Show(Info, "Welcome back!")
	second := n.Show(Error, "Authentication failed.")

	got, ok := n.Current()
	if !ok || got.Seq != second || got.Text != "Authentication failed." || got.Kind != Error {
		t.Fatalf("current = %+v %v", got, ok)
	}
	if n.Dismiss(first) {
		t.Fatalf("dismissing a replaced message must not clear the newer one")
	}
	if _, ok := n.Current(); !ok {
		t.Fatalf("newer message was cleared")
	}
	if !n.Dismiss(second) {
		t.Fatalf("expected dismiss of current message")
	}
	if _, ok := n.Current(); ok {
		t.Fatalf("expected no message")
	}
}

func TestExpiry(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	n := New(3 * time.Second)
	n.Now = c.now

	seq := n.ShowFor(Success, "Nice work!", 4*time.Second)
	c.t = c.t.Add(3 * time.Second)
	if _, ok := n.Current(); !ok {
		t.Fatalf("cheer should outlive the default duration")
	}
	if got := n.Until(seq); got != time.Second {
		t.Fatalf("until = %v", got)
	}
	c.t = c.t.Add(time.Second)
	if _, ok := n.Current(); ok {
		t.Fatalf("expected expiry")
	}
}

func TestZeroDurationFallsBackToDefault(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	n := &Notifier{Now: c.now}
	seq := n.Show(Info, "hi")
	if got := n.Until(seq); got != DefaultDuration {
		t.Fatalf("until = %v", got)
	}
}
