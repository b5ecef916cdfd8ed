package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/auth"
	"github.com/kbukum/voicefeedback/component"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/observability"
	"github.com/kbukum/voicefeedback/server"
	"github.com/kbukum/voicefeedback/server/middleware"
	"github.com/kbukum/voicefeedback/storage"
	"github.com/kbukum/voicefeedback/transcription"
	"github.com/kbukum/voicefeedback/transcription/whisper"
)

// apiComponent wires the feedback service onto the HTTP server. It is
// registered after storage and before the server so routes exist before
// the port is bound.
type apiComponent struct {
	cfg   *feedbackdConfig
	store *storage.Component
	srv   *server.Server
	log   *logger.Logger

	mu          sync.RWMutex
	svc         *feedback.Service
	transcriber transcription.Provider
}

func newAPIComponent(cfg *feedbackdConfig, store *storage.Component, srv *server.Server, log *logger.Logger) *apiComponent {
	return &apiComponent{cfg: cfg, store: store, srv: srv, log: log.WithComponent("api")}
}

func (a *apiComponent) Name() string { return "feedback-api" }

func (a *apiComponent) Start(ctx context.Context) error {
	backend := a.store.Storage()
	if backend == nil {
		return fmt.Errorf("feedback api: storage is not started")
	}

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}
	opts := []feedback.Option{feedback.WithLogger(a.log), feedback.WithMetrics(metrics)}

	var transcriber transcription.Provider
	if a.cfg.Feedback.Transcribe {
		reg := transcription.NewRegistry()
		whisper.Register(reg)
		transcriber, err = reg.Create(a.cfg.Feedback.Transcriber, a.cfg.transcriberConfig())
		if err != nil {
			return err
		}
		if !transcriber.IsAvailable(ctx) {
			a.log.Warn("Transcription backend not reachable, recordings will be stored without text",
				logger.Fields("transcriber", transcriber.Name()))
		}
		opts = append(opts, feedback.WithTranscriber(transcriber))
	}

	svc, err := feedback.NewService(a.cfg.Feedback, backend, opts...)
	if err != nil {
		return err
	}

	var login feedback.LoginFunc
	var protect gin.HandlerFunc
	if a.cfg.Auth.Enabled {
		authn, err := auth.NewAuthenticator(a.cfg.Auth, a.log)
		if err != nil {
			return err
		}
		login = authn.Login
		protect = middleware.GinWrap(middleware.Auth(middleware.AuthConfig{Validator: authn, Log: a.log}))
	} else {
		a.log.Warn("Authentication is disabled, feedback routes are open")
	}

	feedback.NewHandler(svc, login, a.log).Register(a.srv.GinEngine(), protect)

	a.mu.Lock()
	a.svc, a.transcriber = svc, transcriber
	a.mu.Unlock()
	return nil
}

func (a *apiComponent) Stop(context.Context) error { return nil }

func (a *apiComponent) Health(ctx context.Context) component.Health {
	a.mu.RLock()
	svc, transcriber := a.svc, a.transcriber
	a.mu.RUnlock()

	switch {
	case svc == nil:
		return component.Health{Name: a.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	case transcriber != nil && !transcriber.IsAvailable(ctx):
		return component.Health{Name: a.Name(), Status: component.StatusDegraded, Message: "transcription unavailable"}
	default:
		return component.Health{Name: a.Name(), Status: component.StatusHealthy}
	}
}

func (a *apiComponent) Describe() component.Description {
	details := "auth " + a.cfg.Auth.Describe()
	if a.cfg.Feedback.Transcribe {
		details += fmt.Sprintf(", transcription %s (<= %s)", a.cfg.Feedback.Transcriber, a.cfg.Feedback.MaxTranscriptionDuration)
	}
	return component.Description{Name: "Feedback API", Type: "api", Details: details}
}
