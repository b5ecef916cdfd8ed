package jwt

import (
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued at login: the username as subject
// plus the roles granted in the user table.
type Claims struct {
	gojwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// NewClaims returns claims for subject with the given roles.
func NewClaims(subject string, roles ...string) *Claims {
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: subject},
		Roles:            roles,
	}
}

// SetDefaults fills the time and identity claims left empty by the caller.
func (c *Claims) SetDefaults(now time.Time, ttl time.Duration, issuer string, audience []string) {
	if c.IssuedAt == nil {
		c.IssuedAt = gojwt.NewNumericDate(now)
	}
	if c.NotBefore == nil {
		c.NotBefore = gojwt.NewNumericDate(now)
	}
	if c.ExpiresAt == nil && ttl > 0 {
		c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	if c.Issuer == "" {
		c.Issuer = issuer
	}
	if len(c.Audience) == 0 && len(audience) > 0 {
		c.Audience = audience
	}
}

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
