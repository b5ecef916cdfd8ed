// Package storagetest holds the behavior checks every storage backend must pass.
package storagetest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/voicefeedback/storage"
)

// Run exercises a fresh backend returned by newStorage.
func Run(t *testing.T, newStorage func(t *testing.T) storage.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := newStorage(t)
		if err := storage.PutBytes(ctx, s, "voice/42/a.wav", []byte("RIFF1")); err != nil {
			t.Fatalf("PutBytes: %v", err)
		}
		got, err := storage.GetBytes(ctx, s, "voice/42/a.wav")
		if err != nil || string(got) != "RIFF1" {
			t.Fatalf("GetBytes = %q, %v", got, err)
		}
		if ok, err := s.Exists(ctx, "voice/42/a.wav"); !ok || err != nil {
			t.Errorf("Exists = %v, %v", ok, err)
		}
		if u, err := s.URL(ctx, "voice/42/a.wav"); err != nil || !strings.HasSuffix(u, "voice/42/a.wav") {
			t.Errorf("URL = %q, %v", u, err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStorage(t)
		_ = storage.PutBytes(ctx, s, "voice/1/x.wav", []byte("old"))
		_ = storage.PutBytes(ctx, s, "voice/1/x.wav", []byte("new"))
		got, _ := storage.GetBytes(ctx, s, "voice/1/x.wav")
		if string(got) != "new" {
			t.Errorf("got %q after overwrite", got)
		}
	})

	t.Run("missing object", func(t *testing.T) {
		s := newStorage(t)
		if _, err := s.Download(ctx, "voice/none.wav"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Download missing = %v, want ErrNotFound", err)
		}
		if ok, err := s.Exists(ctx, "voice/none.wav"); ok || err != nil {
			t.Errorf("Exists missing = %v, %v", ok, err)
		}
		if err := s.Delete(ctx, "voice/none.wav"); err != nil {
			t.Errorf("Delete missing = %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStorage(t)
		_ = storage.PutBytes(ctx, s, "voice/2/y.wav", []byte("y"))
		if err := s.Delete(ctx, "voice/2/y.wav"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok, _ := s.Exists(ctx, "voice/2/y.wav"); ok {
			t.Error("object still exists after delete")
		}
	})

	t.Run("list by prefix", func(t *testing.T) {
		s := newStorage(t)
		_ = storage.PutBytes(ctx, s, "voice/42/b.wav", []byte("bb"))
		_ = storage.PutBytes(ctx, s, "voice/42/a.wav", []byte("a"))
		_ = storage.PutBytes(ctx, s, "voice/7/c.wav", []byte("c"))

		files, err := s.List(ctx, "voice/42/")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(files) != 2 || files[0].Path != "voice/42/a.wav" || files[1].Size != 2 {
			t.Errorf("List = %+v", files)
		}
		empty, err := s.List(ctx, "voice/none/")
		if err != nil || len(empty) != 0 {
			t.Errorf("List empty = %+v, %v", empty, err)
		}
	})

	t.Run("rejects escaping paths", func(t *testing.T) {
		s := newStorage(t)
		for _, p := range []string{"", "/etc/passwd", "../x.wav", "voice/../../x.wav"} {
			if err := storage.PutBytes(ctx, s, p, []byte("x")); !errors.Is(err, storage.ErrInvalidPath) {
				t.Errorf("PutBytes(%q) = %v, want ErrInvalidPath", p, err)
			}
		}
	})
}
