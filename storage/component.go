package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/voicefeedback/component"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/provider"
)

// Component manages the storage backend lifecycle.
type Component struct {
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
	_ provider.Provider     = (*Component)(nil)
)

// NewComponent creates a storage component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the backend, or nil before Start.
func (c *Component) Storage() Storage {
	return c.storage
}

// Config returns the effective configuration.
func (c *Component) Config() Config {
	return c.cfg
}

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start creates the backend.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("storage component is disabled")
		return nil
	}
	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

// Stop releases the backend.
func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

// IsAvailable reports whether a backend is running.
func (c *Component) IsAvailable(_ context.Context) bool {
	return c.storage != nil
}

// Health probes the backend with an existence check.
func (c *Component) Health(ctx context.Context) component.Health {
	switch {
	case !c.cfg.Enabled:
		return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: "disabled"}
	case c.storage == nil:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if _, err := c.storage.Exists(ctx, ".health"); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health probe failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the bootstrap summary line.
func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	if c.cfg.Provider == ProviderLocal {
		details += " path=" + c.cfg.BasePath
	}
	return component.Description{
		Name:    "Storage",
		Type:    "storage",
		Details: details + " max=" + c.cfg.MaxFileSize,
	}
}
