package middleware

import (
	"net/http"

	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/util"
)

// DefaultMaxBodySize applies when the configured size does not parse.
const DefaultMaxBodySize = 10 << 20

// BodySizeLimit caps request bodies at maxSize ("25MB", "512KB"). A declared
// Content-Length over the cap is refused up front with 413; a streamed body
// is cut off by http.MaxBytesReader and the handler sees *http.MaxBytesError.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
