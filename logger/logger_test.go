package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "capture", &buf)

	l.WithComponent("session").Info("recording started", Fields(FieldSessionID, "s-1", FieldBytes, 42))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "recording started" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[FieldComponent] != "session" {
		t.Errorf("component = %v", entry[FieldComponent])
	}
	if entry[FieldSessionID] != "s-1" {
		t.Errorf("session_id = %v", entry[FieldSessionID])
	}
	if entry[FieldBytes] != float64(42) {
		t.Errorf("bytes = %v", entry[FieldBytes])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)

	ctx := ContextWithRequestID(context.Background(), "req-9")
	ctx = ContextWithUserID(ctx, "analyst")
	l.WithContext(ctx).Info("handled")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-9"`) {
		t.Errorf("expected request_id in %q", out)
	}
	if !strings.Contains(out, `"user_id":"analyst"`) {
		t.Errorf("expected user_id in %q", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithError(errors.New("boom")).Error("failed")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error text in %q", buf.String())
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", NoColor: true}
	l := NewWithWriter(cfg, "feedbackd", &buf)
	l.Info("ready")

	out := buf.String()
	if !strings.Contains(out, "[FEE][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if !strings.Contains(out, "ready") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestInit(t *testing.T) {
	cfg := Config{Level: "info", Format: "console", Output: "stderr", ServiceName: "voicefeedback"}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "voicefeedback" {
		t.Errorf("expected service from config, got %q", gl.service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	SetGlobalLogger(nil)
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
		{"text is not a format", Config{Level: "info", Format: "text"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "syslog"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", "dangling")
	if len(f) != 2 || f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields %v", f)
	}

	ef := ErrorFields("submit", errors.New("x"))
	if ef[FieldOperation] != "submit" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}

	typed := Fields(FieldError, errors.New("y"), FieldDuration, 1500*time.Millisecond)
	if typed[FieldError] != "y" || typed[FieldDuration] != int64(1500) {
		t.Errorf("unexpected typed fields %v", typed)
	}

	if el := Elapsed("playback", time.Now()); el[FieldOperation] != "playback" {
		t.Errorf("unexpected elapsed fields %v", el)
	}
}
