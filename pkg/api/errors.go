package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"tableflip.dev/willow/pkg/planner"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// Unauthorized means the token is missing, expired or rejected.
	Unauthorized Kind = iota + 1
	// NetworkFailure covers transport errors, timeouts and cancellation.
	NetworkFailure
	// ValidationFailure is bad input, caught locally or rejected by the server.
	ValidationFailure
	// ServerError is a 5xx or an unreadable success response.
	ServerError
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case NetworkFailure:
		return "network failure"
	case ValidationFailure:
		return "validation failure"
	case ServerError:
		return "server error"
	}
	return "unknown"
}

// Error is returned by every Client operation that fails.
type Error struct {
	Kind      Kind
	Op        string
	Status    int
	Detail    string
	Fields    map[string][]string
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if msg := e.Message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the most specific human readable reason available.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := e.Fields[k]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// KindOf extracts the failure kind from err.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsUnauthorized reports whether err means the session is no longer valid.
func IsUnauthorized(err error) bool {
	k, ok := KindOf(err)
	return ok && k == Unauthorized
}

func classify(op string, status int, body []byte, requestID string) *Error {
	e := &Error{Op: op, Status: status, RequestID: requestID}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		e.Kind = Unauthorized
	case status >= 400 && status < 500:
		e.Kind = ValidationFailure
	default:
		e.Kind = ServerError
	}
	e.Detail, e.Fields = parseProblem(body)
	return e
}

func invalid(op string, err error) *Error {
	e := &Error{Op: op, Kind: ValidationFailure, Err: err}
	var verr *planner.ValidationError
	if errors.As(err, &verr) {
		e.Fields = make(map[string][]string, len(verr.Fields))
		for k, v := range verr.Fields {
			e.Fields[k] = []string{v}
		}
	}
	return e
}

// parseProblem understands the two REST framework error shapes:
// {"detail": "..."} and {"field": ["...", ...]}.
func parseProblem(body []byte) (string, map[string][]string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}
	detail := ""
	fields := make(map[string][]string)
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if k == "detail" {
				detail = s
			} else {
				fields[k] = []string{s}
			}
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			fields[k] = list
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return detail, fields
}
