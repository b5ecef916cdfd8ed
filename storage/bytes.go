package storage

import (
	"bytes"
	"context"
	"io"
)

// PutBytes stores data at p.
func PutBytes(ctx context.Context, s Storage, p string, data []byte) error {
	return s.Upload(ctx, p, bytes.NewReader(data))
}

// GetBytes reads the whole object at p.
func GetBytes(ctx context.Context, s Storage, p string) ([]byte, error) {
	rc, err := s.Download(ctx, p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
