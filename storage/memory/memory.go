// Package memory is an in-process storage backend. Objects are lost when
// the process exits.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderMemory, func(storage.Config, *logger.Logger) (storage.Storage, error) {
		return New(), nil
	})
}

type object struct {
	data    []byte
	modTime time.Time
}

// Storage implements storage.Storage over a map.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]object
}

var _ storage.Storage = (*Storage)(nil)

// New creates an empty store.
func New() *Storage {
	return &Storage{objects: make(map[string]object)}
}

// Upload stores a copy of reader's content.
func (s *Storage) Upload(_ context.Context, p string, reader io.Reader) error {
	key, err := storage.CleanPath(p)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("memory: read upload: %w", err)
	}
	s.mu.Lock()
	s.objects[key] = object{data: data, modTime: time.Now()}
	s.mu.Unlock()
	return nil
}

// Download returns a reader over a copy of the object.
func (s *Storage) Download(_ context.Context, p string) (io.ReadCloser, error) {
	key, err := storage.CleanPath(p)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, p)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(obj.data))), nil
}

// Delete removes p.
func (s *Storage) Delete(_ context.Context, p string) error {
	key, err := storage.CleanPath(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether p is stored.
func (s *Storage) Exists(_ context.Context, p string) (bool, error) {
	key, err := storage.CleanPath(p)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// URL returns a mem:// locator.
func (s *Storage) URL(_ context.Context, p string) (string, error) {
	key, err := storage.CleanPath(p)
	if err != nil {
		return "", err
	}
	return "mem://" + key, nil
}

// List returns objects under prefix.
func (s *Storage) List(_ context.Context, prefix string) ([]storage.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := []storage.FileInfo{}
	for key, obj := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		ct := mime.TypeByExtension(path.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		files = append(files, storage.FileInfo{
			Path:         key,
			Size:         int64(len(obj.data)),
			LastModified: obj.modTime,
			ContentType:  ct,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
