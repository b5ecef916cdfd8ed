package capture

import "time"

// SetDrainTimeout shortens the stream drain bound for a test.
func SetDrainTimeout(d time.Duration) (restore func()) {
	old := drainTimeout
	drainTimeout = d
	return func() { drainTimeout = old }
}
