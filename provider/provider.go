package provider

import "context"

// Provider is implemented by every backend.
type Provider interface {
	// Name returns the backend name it is registered under.
	Name() string
	// IsAvailable reports whether the backend can serve requests now.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a provider from a loosely typed config section, as read
// from YAML.
type Factory[T Provider] func(cfg map[string]any) (T, error)
