package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/voicefeedback/encryption"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store = %v, want ErrNotFound", err)
	}
	if tok, err := s.Token(ctx); err != nil || tok != "" {
		t.Fatalf("Token on empty store = %q, %v", tok, err)
	}

	if err := s.Save(ctx, Credential{Token: "abc", Username: "analyst"}); err != nil {
		t.Fatal(err)
	}
	if tok, _ := s.Token(ctx); tok != "abc" {
		t.Errorf("Token = %q, want abc", tok)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if tok, _ := s.Token(ctx); tok != "" {
		t.Errorf("Token after Clear = %q", tok)
	}
}

func TestExpiredCredentialHasNoToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, Credential{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	if tok, err := s.Token(ctx); err != nil || tok != "" {
		t.Errorf("Token for expired credential = %q, %v", tok, err)
	}
}

func TestFileStorePlain(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if tok, err := s.Token(ctx); err != nil || tok != "" {
		t.Fatalf("Token with no file = %q, %v", tok, err)
	}

	want := Credential{Token: "tok-1", Username: "analyst", ServerURL: "http://localhost:8080"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Token != want.Token || got.Username != want.Username || got.ServerURL != want.ServerURL {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Errorf("second Clear = %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Clear = %v", err)
	}
}

func TestFileStoreEncrypted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.json")
	enc, err := encryption.New("correct horse", encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(path, WithEncryptor(enc))
	if err := s.Save(ctx, Credential{Token: "secret-token"}); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "secret-token") {
		t.Fatalf("token stored in clear: %s", raw)
	}
	if !strings.Contains(string(raw), string(encryption.AlgorithmChaCha20)) {
		t.Errorf("algorithm not recorded: %s", raw)
	}

	if tok, err := s.Token(ctx); err != nil || tok != "secret-token" {
		t.Errorf("Token = %q, %v", tok, err)
	}

	plain, _ := NewFileStore(path)
	if _, err := plain.Load(ctx); err == nil {
		t.Error("expected error loading encrypted file without a key")
	}

	other, _ := encryption.New("wrong", encryption.WithAlgorithm(encryption.AlgorithmChaCha20))
	wrong, _ := NewFileStore(path, WithEncryptor(other))
	if _, err := wrong.Load(ctx); err == nil {
		t.Error("expected error loading with the wrong key")
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"bad version", `{"version":9,"data":"{}"}`},
		{"bad payload", `{"version":1,"data":"nope"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			s, _ := NewFileStore(path)
			if _, err := s.Load(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRequire(t *testing.T) {
	ctx := context.Background()

	redirected := 0
	redirect := func(context.Context) { redirected++ }

	if _, err := Require(ctx, StaticToken(""), redirect); !IsLoginRequired(err) {
		t.Fatalf("Require with no token = %v, want login required", err)
	}
	if redirected != 1 {
		t.Errorf("redirect called %d times, want 1", redirected)
	}

	tok, err := Require(ctx, StaticToken("t"), redirect)
	if err != nil || tok != "t" {
		t.Errorf("Require = %q, %v", tok, err)
	}
	if redirected != 1 {
		t.Errorf("redirect called for a logged-in user")
	}

	if _, err := Require(ctx, StaticToken(""), nil); !IsLoginRequired(err) {
		t.Errorf("Require with nil redirect = %v", err)
	}
}
