package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/voicefeedback/component"
	"github.com/kbukum/voicefeedback/logger"
)

// DefaultShutdownTimeout bounds stop hooks plus component shutdown.
const DefaultShutdownTimeout = 15 * time.Second

// Hook is a named lifecycle callback. The name shows up in logs and errors.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// App owns the typed config, the logger and the component registry of one
// process. Components start in registration order and stop in reverse.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	shutdownTimeout time.Duration
	signals         []os.Signal
	onReady         []Hook
	onStop          []Hook
}

// Option customizes NewApp.
type Option func(*settings)

type settings struct {
	log             *logger.Logger
	shutdownTimeout time.Duration
	signals         []os.Signal
}

// WithLogger skips logger.Init and uses l instead.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) { s.shutdownTimeout = d }
}

// WithSignals replaces the signals that end Run and cancel RunTask.
// Passing none disables signal handling.
func WithSignals(sig ...os.Signal) Option {
	return func(s *settings) { s.signals = sig }
}

// NewApp applies defaults to cfg, validates it and sets up logging.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	s := settings{
		shutdownTimeout: DefaultShutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(&s)
	}

	base := cfg.GetServiceConfig()
	if s.log == nil {
		logger.Init(&base.Logging)
		s.log = logger.GetGlobalLogger()
	}

	return &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Logger:          s.log,
		shutdownTimeout: s.shutdownTimeout,
		signals:         s.signals,
	}, nil
}

// RegisterComponent adds c to the registry. Names must be unique.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnReady runs fn once every component has started and the ready check ran.
// An error aborts startup.
func (a *App[C]) OnReady(name string, fn func(ctx context.Context) error) {
	a.onReady = append(a.onReady, Hook{Name: name, Fn: fn})
}

// OnStop runs fn during shutdown, before components stop. Every stop hook
// runs even if an earlier one fails.
func (a *App[C]) OnStop(name string, fn func(ctx context.Context) error) {
	a.onStop = append(a.onStop, Hook{Name: name, Fn: fn})
}

// ReadyCheck reports every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		s := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			s += " (" + h.Message + ")"
		}
		bad = append(bad, s)
	}
	if len(bad) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts the app and blocks until ctx ends or a shutdown signal arrives.
func (a *App[C]) Run(ctx context.Context) error {
	ctx, cancel := a.signalContext(ctx)
	defer cancel()

	if err := a.start(ctx); err != nil {
		return errors.Join(err, a.Shutdown())
	}
	a.Logger.Info("Waiting for shutdown signal")
	<-ctx.Done()
	return a.Shutdown()
}

// RunTask starts the app, runs task and shuts down when it returns. A signal
// cancels the context handed to task. The task error wins over a shutdown
// error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx, cancel := a.signalContext(ctx)
	defer cancel()

	if err := a.start(ctx); err != nil {
		return errors.Join(err, a.Shutdown())
	}
	taskErr := task(ctx)
	stopErr := a.Shutdown()
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// Shutdown runs the stop hooks, then stops components in reverse order.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.Logger.Info("Shutting down", map[string]interface{}{
		"timeout": a.shutdownTimeout.String(),
	})

	var errs []error
	for _, h := range a.onStop {
		if err := h.Fn(ctx); err != nil {
			a.Logger.Error("Stop hook failed", logger.Fields("hook", h.Name, logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("stop hook %s: %w", h.Name, err))
		}
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Component shutdown failed", logger.ErrorFields("stop", err))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App[C]) start(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("Starting", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("start components: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.ErrorFields("ready", err))
	}
	for _, h := range a.onReady {
		if err := h.Fn(ctx); err != nil {
			return fmt.Errorf("ready hook %s: %w", h.Name, err)
		}
	}

	logSummary(ctx, a.Logger, a.Components, a.Name, a.Version, time.Since(began))
	return nil
}

func (a *App[C]) signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if len(a.signals) == 0 {
		return context.WithCancel(ctx)
	}
	return signal.NotifyContext(ctx, a.signals...)
}
