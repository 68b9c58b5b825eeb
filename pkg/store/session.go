package store

import (
	"errors"
	"strings"
)

const tokenKey = "session-token"

// ErrEmptyToken is returned when saving a blank token.
var ErrEmptyToken = errors.New("store: empty session token")

// Session persists the access token between runs. It never holds a profile.
type Session struct {
	kv KV
}

func NewSession(kv KV) *Session {
	return &Session{kv: kv}
}

// Restore returns the persisted token, if any.
func (s *Session) Restore() (string, bool, error) {
	tok, ok, err := s.kv.Get(tokenKey)
	if err != nil || !ok {
		return "", false, err
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != "", nil
}

func (s *Session) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return s.kv.Set(tokenKey, token)
}

// Clear erases the token. Clearing an empty session is not an error.
func (s *Session) Clear() error {
	return s.kv.Delete(tokenKey)
}
