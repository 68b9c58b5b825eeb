// Package router decides which screen a path shows given the session state.
package router

import "strings"

type Route string

const (
	Login    Route = "/login"
	Home     Route = "/"
	Planner  Route = "/tasks"
	Calendar Route = "/calendar"
)

// Routes in navigation order.
var Routes = []Route{Home, Planner, Calendar}

func (r Route) Title() string {
	switch r {
	case Login:
		return "Login"
	case Home:
		return "Home"
	case Planner:
		return "Planner"
	case Calendar:
		return "Calendar"
	}
	return string(r)
}

type Decision struct {
	Route      Route
	Redirected bool
}

// Landing is where a session in the given state starts.
func Landing(authenticated bool) Route {
	if authenticated {
		return Home
	}
	return Login
}

// Resolve maps a requested path to the route to display. Unauthenticated
// sessions only ever see Login; authenticated sessions never do.
func Resolve(path string, authenticated bool) Decision {
	want, known := parse(path)
	switch {
	case !known:
		return Decision{Route: Landing(authenticated), Redirected: true}
	case !authenticated && want != Login:
		return Decision{Route: Login, Redirected: true}
	case authenticated && want == Login:
		return Decision{Route: Home, Redirected: true}
	}
	return Decision{Route: want}
}

func parse(path string) (Route, bool) {
	p := strings.TrimSpace(path)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		p = "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	switch r := Route(p); r {
	case Login, Home, Planner, Calendar:
		return r, true
	}
	return "", false
}
