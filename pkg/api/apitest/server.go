// Package apitest runs an in-memory planner API for tests. It speaks the same
// routes, token scheme and error shapes as the real service.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"tableflip.dev/willow/pkg/planner"
)

var signingKey = []byte("apitest-signing-key")

// Request is one call observed by the server.
type Request struct {
	Method    string
	Path      string
	Query     string
	Token     string
	RequestID string
}

type account struct {
	user       planner.User
	password   string
	tasks      []planner.Task
	categories []planner.Category
	goals      []planner.FocusItem
	events     []planner.ScheduleEvent
	notes      []planner.Note
}

type canned struct {
	status int
	body   string
}

// Hold parks the next matching request until Release is called.
type Hold struct {
	Arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *Hold) Release() {
	h.once.Do(func() { close(h.release) })
}

type Server struct {
	*httptest.Server

	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL time.Duration

	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	requests []Request
	canned   map[string][]canned
	holds    map[string][]*Hold
	nextID   int
}

func New() *Server {
	s := &Server{
		TokenTTL: time.Hour,
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		canned:   make(map[string][]canned),
		holds:    make(map[string][]*Hold),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/auth/jwt/create/", s.createToken).Methods(http.MethodPost)
	r.HandleFunc("/auth/users/", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/users/reset_password/", s.resetPassword).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/auth/users/me/", s.me).Methods(http.MethodGet, http.MethodPatch)
	authed.HandleFunc("/auth/users/set_password/", s.setPassword).Methods(http.MethodPost)

	authed.HandleFunc("/api/tasks/", s.listTasks).Methods(http.MethodGet)
	authed.HandleFunc("/api/tasks/", s.createTask).Methods(http.MethodPost)
	authed.HandleFunc("/api/tasks/{id:[0-9]+}/", s.updateTask).Methods(http.MethodPatch)
	authed.HandleFunc("/api/tasks/{id:[0-9]+}/", s.deleteTask).Methods(http.MethodDelete)

	authed.HandleFunc("/api/categories/", s.listCategories).Methods(http.MethodGet)
	authed.HandleFunc("/api/categories/", s.createCategory).Methods(http.MethodPost)

	authed.HandleFunc("/api/focus-items/", s.listGoals).Methods(http.MethodGet)
	authed.HandleFunc("/api/focus-items/", s.createGoal).Methods(http.MethodPost)
	authed.HandleFunc("/api/focus-items/{id:[0-9]+}/", s.updateGoal).Methods(http.MethodPatch)
	authed.HandleFunc("/api/focus-items/{id:[0-9]+}/", s.deleteGoal).Methods(http.MethodDelete)

	authed.HandleFunc("/api/schedule-events/", s.listEvents).Methods(http.MethodGet)
	authed.HandleFunc("/api/schedule-events/", s.createEvent).Methods(http.MethodPost)
	authed.HandleFunc("/api/schedule-events/{id:[0-9]+}/", s.deleteEvent).Methods(http.MethodDelete)

	authed.HandleFunc("/api/notes/", s.listNotes).Methods(http.MethodGet)
	authed.HandleFunc("/api/notes/", s.createNote).Methods(http.MethodPost)
	authed.HandleFunc("/api/notes/{id:[0-9]+}/", s.updateNote).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})
	return r
}

// AddUser creates an account directly and returns its id.
func (s *Server) AddUser(username, email, password string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password).user.ID
}

func (s *Server) addUserLocked(username, email, password string) *account {
	s.nextID++
	a := &account{
		user:     planner.User{ID: s.nextID, Username: username, Email: email, Profile: &planner.Stats{Level: 1}},
		password: password,
	}
	s.accounts[username] = a
	return a
}

// Token issues a valid access token for username without a login request.
func (s *Server) Token(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username, time.Now().Add(s.TokenTTL))
}

// ExpiredToken issues a token whose exp claim is in the past.
func (s *Server) ExpiredToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(username, time.Now().Add(-time.Minute))
}

func (s *Server) issueLocked(username string, exp time.Time) string {
	tok, err := jwt.NewBuilder().
		Subject(username).
		IssuedAt(time.Now()).
		Expiration(exp).
		JwtID(strconv.Itoa(len(s.tokens) + 1)).
		Build()
	if err != nil {
		panic(err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, signingKey))
	if err != nil {
		panic(err)
	}
	s.tokens[string(signed)] = username
	return string(signed)
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// Respond makes the next method+path request answer with status and body.
func (s *Server) Respond(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.canned[key] = append(s.canned[key], canned{status: status, body: body})
}

// FailNext makes the next method+path request fail with status.
func (s *Server) FailNext(method, path string, status int) {
	s.Respond(method, path, status, fmt.Sprintf(`{"detail":%q}`, http.StatusText(status)))
}

// HoldNext parks the next method+path request until the Hold is released.
func (s *Server) HoldNext(method, path string) *Hold {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &Hold{Arrived: make(chan struct{}), release: make(chan struct{})}
	key := method + " " + path
	s.holds[key] = append(s.holds[key], h)
	return h
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many method+path requests were received.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) Tasks(username string) []planner.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		return append([]planner.Task(nil), a.tasks...)
	}
	return nil
}

func (s *Server) Goals(username string) []planner.FocusItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		return append([]planner.FocusItem(nil), a.goals...)
	}
	return nil
}

func (s *Server) Events(username string) []planner.ScheduleEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		return append([]planner.ScheduleEvent(nil), a.events...)
	}
	return nil
}

func (s *Server) Password(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		return a.password
	}
	return ""
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Token:     strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
			RequestID: r.Header.Get("X-Request-ID"),
		})
		var hold *Hold
		if hs := s.holds[key]; len(hs) > 0 {
			hold, s.holds[key] = hs[0], hs[1:]
		}
		var c *canned
		if cs := s.canned[key]; len(cs) > 0 {
			c, s.canned[key] = &cs[0], cs[1:]
		}
		s.mu.Unlock()

		if hold != nil {
			close(hold.Arrived)
			select {
			case <-hold.release:
			case <-r.Context().Done():
				return
			}
		}
		if c != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(c.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxAccount struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		if _, err := jwt.ParseString(raw, jwt.WithKey(jwa.HS256, signingKey), jwt.WithValidate(true)); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		s.mu.Lock()
		username, ok := s.tokens[raw]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxAccount{}, username)))
	})
}

// withAccount runs fn with the caller's account locked.
func (s *Server) withAccount(r *http.Request, fn func(a *account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, _ := r.Context().Value(ctxAccount{}).(string)
	fn(s.accounts[username])
}

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error - " + err.Error()})
		return false
	}
	return true
}

func required(fields map[string][]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = []string{"This field is required."}
	}
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func sortByID[T any](items []T, id func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
