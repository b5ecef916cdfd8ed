package auth

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/voicefeedback/auth/jwt"
	"github.com/kbukum/voicefeedback/auth/password"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := password.NewBcrypt(password.BcryptParams{Cost: 4}, 0).Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := Config{
		Enabled: true,
		JWT:     jwt.Config{Secret: "test-secret"},
		Users:   []User{{Username: "analyst", PasswordHash: hash, Roles: []string{"reviewer"}}},
	}
	a, err := NewAuthenticator(cfg, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	return a
}

func TestLoginSuccess(t *testing.T) {
	a := newTestAuthenticator(t)
	before := time.Now()

	tok, err := a.Login(context.Background(), "analyst", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok.TokenType != "Bearer" || tok.AccessToken == "" {
		t.Errorf("unexpected token %+v", tok)
	}
	if tok.ExpiresAt.Before(before.Add(59 * time.Minute)) {
		t.Errorf("expected ~1h expiry, got %v", tok.ExpiresAt)
	}

	claims, err := a.ValidateToken(tok.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	c := claims.(*jwt.Claims)
	if c.Subject != "analyst" || !c.HasRole("reviewer") {
		t.Errorf("unexpected claims %+v", c)
	}
}

func TestLoginRejects(t *testing.T) {
	a := newTestAuthenticator(t)
	for _, tc := range []struct{ user, pass string }{
		{"analyst", "wrong-password"},
		{"nobody", "correct-horse"},
	} {
		_, err := a.Login(context.Background(), tc.user, tc.pass)
		if !apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
			t.Errorf("Login(%q): expected UNAUTHORIZED, got %v", tc.user, err)
		}
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	a := newTestAuthenticator(t)
	_, err := a.ValidateToken("not-a-jwt")
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled skips checks", Config{}, false},
		{"missing secret", Config{Enabled: true}, true},
		{"valid", Config{Enabled: true, JWT: jwt.Config{Secret: "s"}, Users: []User{{Username: "a", PasswordHash: "h"}}}, false},
		{"duplicate user", Config{Enabled: true, JWT: jwt.Config{Secret: "s"}, Users: []User{{Username: "a", PasswordHash: "h"}, {Username: "a", PasswordHash: "h"}}}, true},
		{"missing hash", Config{Enabled: true, JWT: jwt.Config{Secret: "s"}, Users: []User{{Username: "a"}}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
