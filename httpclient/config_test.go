package httpclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.Timeout)
	}

	cfg = Config{Timeout: 5 * time.Second}
	cfg.ApplyDefaults()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout overwritten: %v", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: time.Second, BaseURL: "http://localhost:8080"}, false},
		{"no base url", Config{Timeout: time.Second}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"relative base url", Config{Timeout: time.Second, BaseURL: "localhost:8080/api"}, true},
		{"missing ca file", Config{Timeout: time.Second, TLS: &TLSConfig{CAFile: "/nonexistent/ca.pem"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_Build(t *testing.T) {
	var nilCfg *TLSConfig
	if c, err := nilCfg.Build(); c != nil || err != nil {
		t.Errorf("nil config: %v %v", c, err)
	}
	if c, err := (&TLSConfig{}).Build(); c != nil || err != nil {
		t.Errorf("empty config: %v %v", c, err)
	}

	c, err := (&TLSConfig{SkipVerify: true, ServerName: "feedback.local"}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if !c.InsecureSkipVerify || c.ServerName != "feedback.local" {
		t.Errorf("unexpected tls config %+v", c)
	}

	bad := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(bad, []byte("not a cert"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := (&TLSConfig{CAFile: bad}).Build(); err == nil {
		t.Error("expected error for CA file without certificates")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.RetryIf == nil || cfg.MaxAttempts != 3 {
		t.Fatalf("unexpected retry config %+v", cfg)
	}
	if cfg.RetryIf(ClassifyStatusCode(400, nil)) {
		t.Error("400 must not be retried")
	}
	if !cfg.RetryIf(ClassifyStatusCode(503, nil)) {
		t.Error("503 must be retried")
	}
}
