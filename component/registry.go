package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/voicefeedback/logger"
)

// StopTimeout caps the time a single component gets to stop.
const StopTimeout = 10 * time.Second

type slot struct {
	c       Component
	running bool
}

// Registry starts components in registration order and stops them in
// reverse. Only components that started are stopped.
type Registry struct {
	mu    sync.RWMutex
	slots []*slot
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

func (r *Registry) log() *logger.Logger {
	return logger.WithComponent("registry")
}

// Register appends c. Register dependencies before their dependents.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.index[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	r.index[name] = len(r.slots)
	r.slots = append(r.slots, &slot{c: c})
	r.log().Debug("Registered", logger.Fields("name", name))
	return nil
}

// StartAll starts every component that is not running yet, stopping at the
// first failure. Components started before the failure stay running so
// StopAll can release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.slots {
		if s.running {
			continue
		}
		name := s.c.Name()
		if err := s.c.Start(ctx); err != nil {
			r.log().Error("Start failed", logger.Fields("name", name, logger.FieldError, err.Error()))
			return fmt.Errorf("start %s: %w", name, err)
		}
		s.running = true
		r.log().Debug("Started", logger.Fields("name", name))
	}
	return nil
}

// StopAll stops running components in reverse order. Each gets at most
// StopTimeout; all failures are joined into the result.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.running {
			continue
		}
		name := s.c.Name()
		stopCtx, cancel := context.WithTimeout(ctx, StopTimeout)
		err := s.c.Stop(stopCtx)
		cancel()
		s.running = false
		if err != nil {
			r.log().Error("Stop failed", logger.Fields("name", name, logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
			continue
		}
		r.log().Debug("Stopped", logger.Fields("name", name))
	}
	return errors.Join(errs...)
}

// HealthAll returns each component's health in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c.Health(ctx)
	}
	return out
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i, ok := r.index[name]; ok {
		return r.slots[i].c
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c
	}
	return out
}
