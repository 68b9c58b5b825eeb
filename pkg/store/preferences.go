package store

import (
	"fmt"
	"strings"
)

const themeKey = "prefs-theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts light or dark in any case.
func ParseTheme(v string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(v))); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q, want light or dark", v)
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Preferences holds user interface settings that outlive a session.
type Preferences struct {
	kv KV
}

func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// Theme loads the saved theme. A missing or unrecognised value is replaced
// with Light and written back.
func (p *Preferences) Theme() (Theme, error) {
	raw, ok, err := p.kv.Get(themeKey)
	if err != nil {
		return Light, err
	}
	if ok {
		if t, err := ParseTheme(raw); err == nil {
			if string(t) != raw {
				return t, p.kv.Set(themeKey, string(t))
			}
			return t, nil
		}
	}
	return Light, p.kv.Set(themeKey, string(Light))
}

func (p *Preferences) SetTheme(t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}
	return p.kv.Set(themeKey, string(t))
}

// ToggleTheme flips the saved theme and returns the new value.
func (p *Preferences) ToggleTheme() (Theme, error) {
	cur, err := p.Theme()
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	return next, p.kv.Set(themeKey, string(next))
}
