package api

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenExpiry reads the exp claim of a JWT access token without verifying its
// signature. ok is false for opaque tokens or tokens without exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	tok, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return time.Time{}, false
	}
	exp = tok.Expiration()
	if exp.IsZero() {
		return time.Time{}, false
	}
	return exp, true
}
