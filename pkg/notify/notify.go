// Package notify keeps the single transient message shown to the user. A new
// message always replaces the previous one.
package notify

import (
	"sync"
	"time"
)

type Kind int

const (
	Info Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "info"
}

// DefaultDuration is how long a message stays visible when no duration is
// configured.
const DefaultDuration = 3 * time.Second

type Notification struct {
	Seq     uint64
	Kind    Kind
	Text    string
	Expires time.Time
}

type Notifier struct {
	Duration time.Duration
	Now      func() time.Time

	mu      sync.Mutex
	seq     uint64
	current *Notification
}

func New(d time.Duration) *Notifier {
	return &Notifier{Duration: d}
}

func (n *Notifier) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Show replaces the current message and returns its sequence number.
func (n *Notifier) Show(kind Kind, text string) uint64 {
	d := n.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return n.ShowFor(kind, text, d)
}

// ShowFor is Show with an explicit display time.
func (n *Notifier) ShowFor(kind Kind, text string, d time.Duration) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.current = &Notification{Seq: n.seq, Kind: kind, Text: text, Expires: n.now().Add(d)}
	return n.seq
}

// Current returns the visible message, if it has not expired by now.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	if !n.now().Before(n.current.Expires) {
		n.current = nil
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss clears the message only if seq is still the newest one.
func (n *Notifier) Dismiss(seq uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.Seq != seq {
		return false
	}
	n.current = nil
	return true
}

// Until reports how long the message seq remains visible, zero if gone.
func (n *Notifier) Until(seq uint64) time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.Seq != seq {
		return 0
	}
	if d := n.current.Expires.Sub(n.now()); d > 0 {
		return d
	}
	return 0
}
