package auth

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/voicefeedback/auth/jwt"
	"github.com/kbukum/voicefeedback/auth/password"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

// Token is the result of a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Authenticator checks credentials against the configured user table and
// issues JWTs. It also implements TokenValidator for the middleware.
type Authenticator struct {
	users  map[string]User
	tokens *jwt.Service[*jwt.Claims]
	log    *logger.Logger
	now    func() time.Time
}

// NewAuthenticator builds an Authenticator from cfg.
func NewAuthenticator(cfg Config, log *logger.Logger) (*Authenticator, error) {
	cfg.ApplyDefaults()
	tokens, err := jwt.NewService(&cfg.JWT, func() *jwt.Claims { return &jwt.Claims{} })
	if err != nil {
		return nil, err
	}
	users := make(map[string]User, len(cfg.Users))
	for _, u := range cfg.Users {
		users[u.Username] = u
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Authenticator{
		users:  users,
		tokens: tokens,
		log:    log.WithComponent("auth"),
		now:    time.Now,
	}, nil
}

// Login verifies username and secret and returns a signed access token.
// Unknown users and wrong passwords produce the same error.
func (a *Authenticator) Login(ctx context.Context, username, secret string) (*Token, error) {
	u, ok := a.users[username]
	if !ok {
		a.log.WithContext(ctx).Warn("Login rejected", logger.Fields(logger.FieldUserID, username, "reason", "unknown user"))
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err := password.Detect(u.PasswordHash).Verify(secret, u.PasswordHash); err != nil {
		a.log.WithContext(ctx).Warn("Login rejected", logger.Fields(logger.FieldUserID, username, "reason", "bad password"))
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	issued := a.now()
	claims := jwt.NewClaims(username, u.Roles...)
	signed, err := a.tokens.GenerateAccess(claims)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	a.log.WithContext(ctx).Info("Login succeeded", logger.Fields(logger.FieldUserID, username))
	return &Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   issued.Add(a.tokens.TTL()),
	}, nil
}

// ValidateToken implements TokenValidator.
func (a *Authenticator) ValidateToken(token string) (any, error) {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	return claims, nil
}
