// Package credential stores the bearer token the capture client sends with
// uploads, and implements the login gate run before recording.
package credential

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kbukum/voicefeedback/errors"
)

// ErrNotFound is returned by Load when nothing is stored.
var ErrNotFound = errors.New("credential: not found")

// Credential is a stored login.
type Credential struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	ServerURL string    `json:"server_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the credential has a known expiry in the past.
func (c *Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Source supplies the current bearer token. An empty token with a nil error
// means the user is not logged in.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Store persists a credential.
type Store interface {
	Source
	Load(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, c Credential) error
	Clear(ctx context.Context) error
}

// StaticToken is a Source that always returns the same token.
type StaticToken string

// Token implements Source.
func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// tokenFrom implements Source.Token on top of Load.
func tokenFrom(ctx context.Context, load func(context.Context) (*Credential, error), now func() time.Time) (string, error) {
	c, err := load(ctx)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if c.Expired(now()) {
		return "", nil
	}
	return c.Token, nil
}

// Require returns the stored token, or calls redirect and returns a
// LoginRequired error when there is none.
func Require(ctx context.Context, src Source, redirect func(ctx context.Context)) (string, error) {
	token, err := src.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		if redirect != nil {
			redirect(ctx)
		}
		return "", apperrors.LoginRequired()
	}
	return token, nil
}

// IsLoginRequired reports whether err came from Require.
func IsLoginRequired(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeLoginRequired)
}
