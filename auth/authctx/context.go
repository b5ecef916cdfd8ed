// Package authctx carries the authenticated caller's claims through a
// request context.
//
//	ctx = authctx.Set(ctx, claims)
//	claims, ok := authctx.Get[*jwt.Claims](ctx)
//	user := authctx.Subject(ctx)
package authctx

import (
	"context"
	"errors"
)

type contextKey struct{}

var claimsKey = contextKey{}

// ErrNoClaims is returned when claims are not found in the context.
var ErrNoClaims = errors.New("authctx: no claims in context")

// Set stores authentication claims in the context.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves typed authentication claims from the context.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey).(T)
	return claims, ok
}

// GetOrError retrieves typed claims from the context.
// Returns ErrNoClaims if claims are missing or of the wrong type.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoClaims
	}
	return claims, nil
}

// Subject returns the "sub" claim of whatever claims are stored, or "" when
// the request is unauthenticated.
func Subject(ctx context.Context) string {
	s, ok := ctx.Value(claimsKey).(interface{ GetSubject() (string, error) })
	if !ok {
		return ""
	}
	sub, err := s.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
