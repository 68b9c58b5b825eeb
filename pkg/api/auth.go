package api

import (
	"context"
	"net/http"

	"tableflip.dev/willow/pkg/planner"
)

const (
	pathTokenCreate   = "/auth/jwt/create/"
	pathUsers         = "/auth/users/"
	pathMe            = "/auth/users/me/"
	pathResetPassword = "/auth/users/reset_password/"
	pathSetPassword   = "/auth/users/set_password/"
)

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds planner.Credentials) (string, error) {
	var tp tokenPair
	if err := c.do(ctx, "", http.MethodPost, pathTokenCreate, nil, creds, &tp); err != nil {
		return "", err
	}
	if tp.Access == "" {
		return "", &Error{Op: http.MethodPost + " " + pathTokenCreate, Kind: ServerError, Err: ErrNoToken}
	}
	return tp.Access, nil
}

func (c *Client) Register(ctx context.Context, reg planner.Registration) (planner.User, error) {
	var u planner.User
	err := c.do(ctx, "", http.MethodPost, pathUsers, nil, reg, &u)
	return u, err
}

func (c *Client) Profile(ctx context.Context, token string) (planner.User, error) {
	var u planner.User
	err := c.do(ctx, token, http.MethodGet, pathMe, nil, nil, &u)
	return u, err
}

func (c *Client) UpdateEmail(ctx context.Context, token string, in planner.EmailChange) (planner.User, error) {
	var u planner.User
	err := c.do(ctx, token, http.MethodPatch, pathMe, nil, in, &u)
	return u, err
}

func (c *Client) RequestPasswordReset(ctx context.Context, in planner.PasswordReset) error {
	return c.do(ctx, "", http.MethodPost, pathResetPassword, nil, in, nil)
}

func (c *Client) SetPassword(ctx context.Context, token string, in planner.PasswordChange) error {
	return c.do(ctx, token, http.MethodPost, pathSetPassword, nil, in, nil)
}
