package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/voicefeedback/component"
	"github.com/kbukum/voicefeedback/logger"
)

// describe returns c's self-description, falling back to its name.
func describe(c component.Component) component.Description {
	d := component.Description{Name: c.Name()}
	if ds, ok := c.(component.Describable); ok {
		d = ds.Describe()
		if d.Name == "" {
			d.Name = c.Name()
		}
	}
	return d
}

// routes gathers the routes of every RouteProvider in the registry.
func routes(reg *component.Registry) []component.Route {
	var out []component.Route
	for _, c := range reg.All() {
		if rp, ok := c.(component.RouteProvider); ok {
			out = append(out, rp.Routes()...)
		}
	}
	return out
}

// logSummary logs one line per component with its health, then the routes
// at debug level.
func logSummary(ctx context.Context, log *logger.Logger, reg *component.Registry, name, version string, took time.Duration) {
	all := reg.All()
	log.Info("Started", map[string]interface{}{
		"name":       name,
		"version":    version,
		"startup_ms": took.Milliseconds(),
		"components": len(all),
	})

	health := reg.HealthAll(ctx)
	for i, c := range all {
		d := describe(c)
		fields := logger.Fields(logger.FieldComponent, d.Name, "type", d.Type)
		if d.Details != "" {
			fields["details"] = d.Details
		}
		if d.Port != 0 {
			fields["port"] = d.Port
		}
		if i < len(health) {
			fields["status"] = string(health[i].Status)
		}
		log.Info("Component", fields)
	}

	for _, r := range routes(reg) {
		log.Debug("Route", logger.Fields("method", r.Method, "path", r.Path, "handler", r.Handler))
	}
}
