package router

import "testing"

func TestResolve(t *testing.T) {
	tests := map[string]struct {
		path   string
		authed bool
		want   Decision
	}{
		"anon login":      {path: "/login", want: Decision{Route: Login}},
		"anon home":       {path: "/", want: Decision{Route: Login, Redirected: true}},
		"anon tasks":      {path: "/tasks", want: Decision{Route: Login, Redirected: true}},
		"anon calendar":   {path: "/calendar", want: Decision{Route: Login, Redirected: true}},
		"anon unknown":    {path: "/nope", want: Decision{Route: Login, Redirected: true}},
		"authed login":    {path: "/login", authed: true, want: Decision{Route: Home, Redirected: true}},
		"authed home":     {path: "/", authed: true, want: Decision{Route: Home}},
		"authed tasks":    {path: "/tasks/", authed: true, want: Decision{Route: Planner}},
		"authed calendar": {path: "/calendar?month=3", authed: true, want: Decision{Route: Calendar}},
		"authed empty":    {path: "", authed: true, want: Decision{Route: Home}},
		"authed unknown":  {path: "/settings", authed: true, want: Decision{Route: Home, Redirected: true}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Resolve(tc.path, tc.authed); got != tc.want {
				t.Fatalf("Resolve(%q, %v) = %+v, want %+v", tc.path, tc.authed, got, tc.want)
			}
		})
	}
}
