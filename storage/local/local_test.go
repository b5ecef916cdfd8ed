package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/storage"
	"github.com/kbukum/voicefeedback/storage/storagetest"
)

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, err := NewStorage(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		return s
	})
}

func TestNewStorage_RequiresPath(t *testing.T) {
	if _, err := NewStorage(""); err == nil {
		t.Fatal("expected error for empty base path")
	}
}

func TestUpload_WritesUnderBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewStorage(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := storage.PutBytes(t.Context(), s, "voice/42/a.wav", []byte("RIFF")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(base, "voice", "42", "a.wav"))
	if err != nil || string(data) != "RIFF" {
		t.Errorf("file content = %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Join(base, "voice", "42"))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestFactoryRegistered(t *testing.T) {
	s, err := storage.New(storage.Config{Provider: storage.ProviderLocal, BasePath: t.TempDir()}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := s.(*Storage); !ok {
		t.Errorf("New() returned %T", s)
	}
}
