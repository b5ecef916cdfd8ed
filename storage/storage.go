package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by Download for a missing object.
	ErrNotFound = errors.New("storage: object not found")
	// ErrInvalidPath is returned for empty, absolute or escaping paths.
	ErrInvalidPath = errors.New("storage: invalid object path")
)

// FileInfo describes a stored object.
type FileInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Storage is implemented by every backend.
type Storage interface {
	// Upload writes reader to p, replacing any existing object.
	Upload(ctx context.Context, p string, reader io.Reader) error
	// Download opens the object at p. The caller closes it.
	Download(ctx context.Context, p string) (io.ReadCloser, error)
	// Delete removes p. Deleting a missing object is not an error.
	Delete(ctx context.Context, p string) error
	// Exists reports whether p is stored.
	Exists(ctx context.Context, p string) (bool, error)
	// URL returns a locator for p.
	URL(ctx context.Context, p string) (string, error)
	// List returns objects whose path starts with prefix, sorted by path.
	List(ctx context.Context, prefix string) ([]FileInfo, error)
}

// CleanPath normalizes an object path and rejects paths that are empty,
// absolute or contain "..".
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	clean := path.Clean(p)
	if clean == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return clean, nil
}
