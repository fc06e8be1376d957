// Package token inspects access tokens issued by the backend. Signatures are not
// verified: the client only reads claims for display and never trusts them for
// authorization.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaque is returned for tokens that are not JWTs.
var ErrOpaque = errors.New("token is not a JWT")

// Claims is the subset of registered claims the client uses.
type Claims struct {
	Subject   string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

// Expired reports whether the claims carry an expiry that is not after reference.
func (c Claims) Expired(reference time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !c.ExpiresAt.After(reference)
}

// Inspect decodes the registered claims of a JWT without checking its signature.
func Inspect(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrOpaque
	}
	registered := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, registered); err != nil {
		return Claims{}, errors.Join(ErrOpaque, err)
	}

	claims := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		exp := registered.ExpiresAt.Time
		claims.ExpiresAt = &exp
	}
	if registered.IssuedAt != nil {
		iat := registered.IssuedAt.Time
		claims.IssuedAt = &iat
	}
	return claims, nil
}
