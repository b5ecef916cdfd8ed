package main

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/voicefeedback/auth"
	"github.com/kbukum/voicefeedback/auth/jwt"
	"github.com/kbukum/voicefeedback/auth/password"
	"github.com/kbukum/voicefeedback/capture"
	"github.com/kbukum/voicefeedback/capture/capturetest"
	"github.com/kbukum/voicefeedback/config"
	"github.com/kbukum/voicefeedback/credential"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/httpclient"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/server"
	"github.com/kbukum/voicefeedback/storage"
)

func testConfig(t *testing.T) *feedbackdConfig {
	t.Helper()
	hash, err := password.NewBcrypt(password.BcryptParams{Cost: 4}, 0).Hash("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	return &feedbackdConfig{
		ServiceConfig: config.ServiceConfig{
			Name:    serviceName,
			Logging: logger.Config{Level: "error", Format: "json"},
		},
		Server: server.Config{Host: "127.0.0.1", Port: freePort(t)},
		Auth: auth.Config{
			Enabled: true,
			JWT:     jwt.Config{Secret: "test-secret"},
			Users:   []auth.User{{Username: "analyst", PasswordHash: hash}},
		},
		Storage: storage.Config{Enabled: true, Provider: storage.ProviderMemory},
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestConfigDefaults(t *testing.T) {
	var cfg feedbackdConfig
	cfg.Storage.Enabled = true
	cfg.ApplyDefaults()
	if cfg.Name != serviceName || cfg.Server.Port != 8080 || cfg.Feedback.KeyPrefix != "voice" {
		t.Errorf("unexpected defaults: name=%q port=%d prefix=%q", cfg.Name, cfg.Server.Port, cfg.Feedback.KeyPrefix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*feedbackdConfig)
	}{
		{"storage disabled", func(c *feedbackdConfig) { c.Storage.Enabled = false }},
		{"unknown storage", func(c *feedbackdConfig) { c.Storage.Provider = "s3" }},
		{"auth without secret", func(c *feedbackdConfig) { c.Auth.JWT.Secret = "" }},
		{"bad sample rate", func(c *feedbackdConfig) { c.Observability.SampleRate = 2 }},
		{"bad audio size", func(c *feedbackdConfig) { c.Feedback.MaxAudioSize = "huge" }},
		{"production placeholder secret", func(c *feedbackdConfig) {
			c.Environment = config.EnvProduction
			c.Auth.JWT.Secret = placeholderSecret
		}},
		{"production without auth", func(c *feedbackdConfig) {
			c.Environment = config.EnvProduction
			c.Auth.Enabled = false
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.ApplyDefaults()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTranscriberConfig(t *testing.T) {
	cfg := feedbackdConfig{
		Feedback:      feedback.Config{Transcriber: "whisper"},
		Transcription: map[string]map[string]any{"whisper": {"url": "http://stt:9000"}},
	}
	if got := cfg.transcriberConfig()["url"]; got != "http://stt:9000" {
		t.Errorf("url = %v", got)
	}
	cfg.Feedback.Transcriber = "other"
	if got := cfg.transcriberConfig(); got == nil || len(got) != 0 {
		t.Errorf("missing section = %v", got)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword(password.Config{Bcrypt: password.BcryptParams{Cost: 4}}, strings.NewReader("correct-horse\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := password.Detect(hash).Verify("correct-horse", hash); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
	if _, err := hashPassword(password.Config{}, strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestServiceEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	app, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Components.StartAll(ctx); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	defer func() { _ = app.Components.StopAll(context.Background()) }()

	if err := app.ReadyCheck(ctx); err != nil {
		t.Errorf("ReadyCheck() = %v", err)
	}

	sc, ok := app.Components.Get("http-server").(*server.ServerComponent)
	if !ok {
		t.Fatal("http-server component not registered")
	}
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard)
	tokens := credential.NewMemoryStore()
	client, err := feedback.NewClient(httpclient.Config{BaseURL: "http://" + sc.Server().Addr()}, tokens, log)
	if err != nil {
		t.Fatal(err)
	}

	data, err := capture.EncodeWAV(capturetest.Tone(1600, 0), capture.DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	artifact := &capture.Artifact{Data: data, MediaType: capture.MediaTypeWAV, FileName: capture.FileName}

	if err := client.Submit(ctx, artifact, "42"); !capture.IsSubmissionFailed(err) {
		t.Fatalf("Submit without login = %v, want SubmissionFailed", err)
	}

	login, err := client.Login(ctx, "analyst", "correct-horse")
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}
	_ = tokens.Save(ctx, credential.Credential{Token: login.Token, Username: "analyst"})

	if err := client.Submit(ctx, artifact, "42"); err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	records, err := client.Recent(ctx, "42")
	if err != nil {
		t.Fatalf("Recent() = %v", err)
	}
	if len(records) != 1 || records[0].UserID != "analyst" || records[0].Duration != 100*time.Millisecond {
		t.Errorf("records = %+v", records)
	}
}
