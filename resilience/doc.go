// Package resilience retries failed operations with exponential backoff and
// jitter. The HTTP client wraps each attempt with Retry when a RetryConfig is
// set; the speech-to-text sidecar client is the main user.
//
//	cfg := resilience.DefaultRetryConfig()
//	cfg.MaxAttempts = 4
//	text, err := resilience.Retry(ctx, cfg, func() (string, error) {
//	    return sidecar.Transcribe(ctx, audio)
//	})
package resilience
