package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/voicefeedback/logger"
)

// quietPaths are polled by probes and not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/info":    true,
	"/version": true,
}

// slowRequest marks requests worth a look; uploads with transcription can
// legitimately exceed it.
const slowRequest = 500 * time.Millisecond

// RequestLogger returns middleware that logs every request with method,
// path, status, response size and duration. Probe paths are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := newRecorder(w)
			next.ServeHTTP(rec, r)
			duration := time.Since(start)
			status := rec.Status()

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				logger.FieldStatus, status,
				logger.FieldBytes, rec.written,
				logger.FieldDuration, duration,
			)
			if duration > slowRequest {
				fields["slow"] = true
			}
			l := log.WithContext(r.Context())
			switch {
			case status >= 500:
				l.Error("Request completed", fields)
			case status >= 400:
				l.Warn("Request completed", fields)
			default:
				l.Debug("Request completed", fields)
			}
		})
	}
}
