package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is what cmd/tokengen issues unless told otherwise.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims carry the caller's capabilities ("role:read", "acme.role:update")
// in Scopes. The role service never issues them, only checks them.
type Claims struct {
	jwt.RegisteredClaims

	Scopes []string `json:"scopes,omitempty"`
}

// NewAccessClaims stamps iat, nbf and exp from now and a random jti.
func NewAccessClaims(subject, issuer string, scopes []string, ttl time.Duration, now time.Time) Claims {
	var jti [16]byte
	_, _ = rand.Read(jti[:])

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        base64.RawURLEncoding.EncodeToString(jti[:]),
		},
		Scopes: scopes,
	}
}

// HasScope reports whether the claims grant scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// checkIssuer is a no-op when expected is empty.
func (c *Claims) checkIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// checkTimes validates exp and nbf against now, allowing leeway either way.
func (c *Claims) checkTimes(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
