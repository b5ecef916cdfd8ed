package server

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// ServerComponent runs a Server under the component registry.
type ServerComponent struct {
	server *Server
}

// NewComponent wraps s.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

// Server returns the wrapped server.
func (sc *ServerComponent) Server() *Server { return sc.server }

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error { return sc.server.Start(ctx) }

func (sc *ServerComponent) Stop(ctx context.Context) error { return sc.server.Stop(ctx) }

// Health is unhealthy until the listener is bound.
func (sc *ServerComponent) Health(context.Context) component.Health {
	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	sc.server.mu.RLock()
	if sc.server.listener == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not listening"
	}
	sc.server.mu.RUnlock()
	return h
}

func (sc *ServerComponent) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
		Port:    sc.server.config.Port,
	}
}

// Routes lists the Gin routes for the startup summary: feedback routes
// first, then the system endpoints, each group by path and method.
func (sc *ServerComponent) Routes() []component.Route {
	info := slices.Clone(sc.server.engine.Routes())
	slices.SortFunc(info, func(a, b gin.RouteInfo) int {
		return cmp.Or(
			cmp.Compare(rank(isSystemPath(a.Path)), rank(isSystemPath(b.Path))),
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(methodRank(a.Method), methodRank(b.Method)),
		)
	})

	out := make([]component.Route, len(info))
	for i, r := range info {
		label := handlerLabel(r.Handler)
		if isSystemPath(r.Path) {
			label += " (system)"
		}
		out[i] = component.Route{Method: r.Method, Path: r.Path, Handler: label}
	}
	return out
}

func isSystemPath(p string) bool {
	return p == "/health" || p == "/info" || p == "/version"
}

func rank(b bool) int {
	if b {
		return 1
	}
	return 0
}

var methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

func methodRank(m string) int {
	if i := slices.Index(methods, m); i >= 0 {
		return i
	}
	return len(methods)
}

// handlerLabel turns Gin's handler symbol into a short label:
// "…/feedback.(*Handler).Submit-fm" is "Handler.Submit" and the closure
// "…/endpoint.Health.func1" is "health".
func handlerLabel(symbol string) string {
	symbol = strings.TrimSuffix(symbol, "-fm")
	symbol = symbol[strings.LastIndex(symbol, "/")+1:]
	symbol = strings.NewReplacer("(*", "", ")", "").Replace(symbol)

	parts := strings.Split(symbol, ".")
	closure := false
	for len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1], "func") {
		parts, closure = parts[:len(parts)-1], true
	}
	if closure {
		return strings.ToLower(parts[len(parts)-1])
	}
	if len(parts) > 1 && strings.ToLower(parts[0]) == parts[0] {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
