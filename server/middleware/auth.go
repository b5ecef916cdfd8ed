package middleware

import (
	"net/http"
	"strings"

	"github.com/kbukum/voicefeedback/auth"
	"github.com/kbukum/voicefeedback/auth/authctx"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

// AuthConfig configures the bearer token middleware.
type AuthConfig struct {
	// Validator parses a token and returns its claims.
	Validator auth.TokenValidator
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
	Log       *logger.Logger
}

// Auth returns middleware that requires "Authorization: Bearer <token>".
// Validated claims are stored with authctx.Set and the subject is attached
// to the log context. Failures answer 401 with the error envelope.
func Auth(cfg AuthConfig) Middleware {
	log := cfg.Log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.SkipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			token, appErr := bearerToken(r)
			if appErr == nil {
				claims, err := cfg.Validator.ValidateToken(token)
				if err == nil {
					ctx := authctx.Set(r.Context(), claims)
					if sub := authctx.Subject(ctx); sub != "" {
						ctx = logger.ContextWithUserID(ctx, sub)
					}
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				var ok bool
				if appErr, ok = apperrors.AsAppError(err); !ok {
					appErr = apperrors.InvalidToken().WithCause(err)
				}
			}

			log.WithContext(r.Context()).Warn("Request rejected", map[string]interface{}{
				"path":            r.URL.Path,
				logger.FieldError: appErr.Message,
			})
			writeError(w, appErr)
		})
	}
}

func bearerToken(r *http.Request) (string, *apperrors.AppError) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header required")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", apperrors.Unauthorized("Invalid authorization header format")
	}
	return strings.TrimSpace(token), nil
}
