package component

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultRetryDelay is how long Lazy remembers a failed initialization.
const DefaultRetryDelay = 5 * time.Second

// Lazy runs an expensive setup step on first use and remembers the outcome.
// A failure is cached for the retry delay so repeated callers (every Start
// of a capture session) do not re-probe a missing library each time.
type Lazy struct {
	name  string
	init  func(ctx context.Context) error
	check func(ctx context.Context) error
	close func() error

	retryDelay time.Duration
	now        func() time.Time

	mu       sync.Mutex
	ready    bool
	err      error
	failedAt time.Time
}

// NewLazy returns a Lazy that runs init on first use.
func NewLazy(name string, init func(ctx context.Context) error) *Lazy {
	return &Lazy{name: name, init: init, retryDelay: DefaultRetryDelay, now: time.Now}
}

// WithCheck sets the probe Check runs once initialized.
func (l *Lazy) WithCheck(fn func(ctx context.Context) error) *Lazy {
	l.check = fn
	return l
}

// WithClose sets the teardown Close runs when initialized.
func (l *Lazy) WithClose(fn func() error) *Lazy {
	l.close = fn
	return l
}

// WithRetryDelay overrides DefaultRetryDelay. Zero retries on every call.
func (l *Lazy) WithRetryDelay(d time.Duration) *Lazy {
	l.retryDelay = d
	return l
}

// Name returns the name given to NewLazy.
func (l *Lazy) Name() string { return l.name }

// Init runs the setup step unless it already succeeded or failed within
// the retry delay.
func (l *Lazy) Init(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready {
		return nil
	}
	if l.err != nil && l.now().Sub(l.failedAt) < l.retryDelay {
		return l.err
	}
	if err := l.init(ctx); err != nil {
		l.err = fmt.Errorf("%s: %w", l.name, err)
		l.failedAt = l.now()
		return l.err
	}
	l.ready, l.err = true, nil
	return nil
}

// Ready reports whether Init has succeeded since the last Close.
func (l *Lazy) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Err returns the last initialization failure, if any.
func (l *Lazy) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Check fails until Init succeeds, then runs the configured probe.
func (l *Lazy) Check(ctx context.Context) error {
	l.mu.Lock()
	ready, err := l.ready, l.err
	l.mu.Unlock()
	switch {
	case ready && l.check != nil:
		return l.check(ctx)
	case ready:
		return nil
	case err != nil:
		return err
	default:
		return fmt.Errorf("%s: not initialized", l.name)
	}
}

// Close tears down an initialized resource. The next Init starts over.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	wasReady := l.ready
	l.ready, l.err = false, nil
	if wasReady && l.close != nil {
		return l.close()
	}
	return nil
}
