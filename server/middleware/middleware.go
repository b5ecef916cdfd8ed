// Package middleware holds the http-level request chain of the feedback
// server: recovery, request ids, tracing, CORS, body limits, logging and
// bearer authentication.
package middleware

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voicefeedback/errors"
)

// Middleware decorates an http.Handler. Gin route groups take it through
// GinWrap.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that mws[0] sees the request first.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			h = mw(h)
		}
		return h
	}
}

// GinWrap runs mw inside a Gin chain. The request mw hands to its next
// handler replaces c.Request; if mw never calls next the chain is aborted.
func GinWrap(mw Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.HTTPStatus)
	_ = json.NewEncoder(w).Encode(err.ToResponse())
}
