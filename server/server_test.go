package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/component"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	return New(cfg, logger.NewDefault("server-test"))
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.ReadTimeout != 30*time.Second || cfg.ShutdownTimeout != 5*time.Second || cfg.MaxBodySize != "25MB" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"negative read timeout", func(c *Config) { c.ReadTimeout = -time.Second }, true},
		{"negative shutdown timeout", func(c *Config) { c.ShutdownTimeout = -1 }, true},
		{"bad body size", func(c *Config) { c.MaxBodySize = "lots" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Config{}
			c.ApplyDefaults()
			tc.mutate(&c)
			if err := c.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultEndpointsThroughChain(t *testing.T) {
	s := newTestServer(t)
	s.ApplyDefaults("feedbackd", nil)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("health = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected request id header from middleware chain")
	}
}

func TestRespondWithError(t *testing.T) {
	s := newTestServer(t)
	s.GinEngine().GET("/app", func(c *gin.Context) { RespondWithError(c, apperrors.MissingField("audio")) })
	s.GinEngine().GET("/plain", func(c *gin.Context) { RespondWithError(c, errors.New("boom")) })
	s.GinEngine().GET("/list", func(c *gin.Context) { RespondList[string](c, nil) })

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/app", http.StatusBadRequest},
		{"/plain", http.StatusInternalServerError},
		{"/list", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))
			if rr.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d (%s)", rr.Code, tc.wantCode, rr.Body.String())
			}
		})
	}

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/list", http.NoBody))
	var body struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data == nil || body.Meta.Total != 0 {
		t.Errorf("expected empty list envelope, got %s", rr.Body.String())
	}
}

func TestComponentLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.ApplyDefaults("feedbackd", nil)
	s.GinEngine().POST("/api/feedback/voice", func(c *gin.Context) { c.Status(http.StatusOK) })
	sc := NewComponent(s)

	if h := sc.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}

	ctx := context.Background()
	if err := sc.Start(ctx); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	t.Cleanup(func() { _ = sc.Stop(ctx) })

	if h := sc.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	resp, err := http.Get("http://" + s.Addr() + "/version")
	if err != nil {
		t.Fatalf("GET /version: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/version = %d", resp.StatusCode)
	}

	routes := sc.Routes()
	if len(routes) == 0 || routes[0].Path != "/api/feedback/voice" {
		t.Fatalf("expected API route first, got %+v", routes)
	}
	if d := sc.Describe(); d.Type != "server" || d.Details != s.Addr() {
		t.Errorf("unexpected description %+v", d)
	}
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/kbukum/voicefeedback/feedback.(*Handler).Submit-fm", "Handler.Submit"},
		{"github.com/kbukum/voicefeedback/server/endpoint.Health.func1", "health"},
		{"main.main.func2", "main"},
	}
	for _, tc := range tests {
		if got := handlerLabel(tc.in); got != tc.want {
			t.Errorf("handlerLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
