package provider

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknown is returned by Create for a name with no factory.
var ErrUnknown = errors.New("provider not registered")

type entry[T Provider] struct {
	factory Factory[T]
	inst    T
	built   bool
}

// Registry maps backend names to factories and keeps the last instance
// each factory produced.
type Registry[T Provider] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{entries: map[string]*entry[T]{}}
}

// RegisterFactory binds factory to name. Re-registering drops any instance
// built by the previous factory.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	r.entries[name] = &entry[T]{factory: factory}
	r.mu.Unlock()
}

// Create builds an instance with the named factory. A successful result
// replaces the cached one; a failed build leaves the cache untouched.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	var zero T

	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %q (known: %s)", ErrUnknown, name, strings.Join(r.List(), ", "))
	}

	inst, err := e.factory(cfg)
	if err != nil {
		return zero, fmt.Errorf("create provider %q: %w", name, err)
	}

	r.mu.Lock()
	e.inst, e.built = inst, true
	r.mu.Unlock()
	return inst, nil
}

// Get returns the cached instance for name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[name]; ok && e.built {
		return e.inst, true
	}
	var zero T
	return zero, false
}

// Available probes every cached instance and returns the names of those
// that can serve now, sorted. Probes run without the lock held.
func (r *Registry[T]) Available(ctx context.Context) []string {
	r.mu.RLock()
	built := make(map[string]T)
	for name, e := range r.entries {
		if e.built {
			built[name] = e.inst
		}
	}
	r.mu.RUnlock()

	var up []string
	for _, name := range slices.Sorted(maps.Keys(built)) {
		if built[name].IsAvailable(ctx) {
			up = append(up, name)
		}
	}
	return up
}

// List returns the registered names, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}
