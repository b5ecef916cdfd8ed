package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/voicefeedback/encryption"
)

const (
	fileVersion    = 1
	associatedData = "voicefeedback-credential"
)

// fileEnvelope is the on-disk format. Data holds the JSON credential,
// sealed when Algorithm is set.
type fileEnvelope struct {
	Version   int                  `json:"version"`
	Algorithm encryption.Algorithm `json:"algorithm,omitempty"`
	Data      string               `json:"data"`
}

// FileStore keeps the credential in a 0600 file, optionally encrypted.
type FileStore struct {
	path string
	enc  encryption.Encryptor
	now  func() time.Time
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithEncryptor seals the stored credential with enc.
func WithEncryptor(enc encryption.Encryptor) FileOption {
	return func(f *FileStore) { f.enc = enc }
}

// NewFileStore returns a FileStore at path. An empty path uses DefaultPath.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	f := &FileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// DefaultPath is credentials.json under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("credential: locate config dir: %w", err)
	}
	return filepath.Join(dir, "voicefeedback", "credentials.json"), nil
}

// Path returns the file location.
func (f *FileStore) Path() string { return f.path }

// Load implements Store.
func (f *FileStore) Load(context.Context) (*Credential, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("credential: read %s: %w", f.path, err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("credential: parse %s: %w", f.path, err)
	}
	if env.Version != fileVersion {
		return nil, fmt.Errorf("credential: unsupported file version %d", env.Version)
	}

	payload := []byte(env.Data)
	if env.Algorithm != "" {
		if f.enc == nil {
			return nil, fmt.Errorf("credential: %s is encrypted (%s) but no key is configured", f.path, env.Algorithm)
		}
		if payload, err = f.enc.Decrypt(env.Data, []byte(associatedData)); err != nil {
			return nil, fmt.Errorf("credential: decrypt %s: %w", f.path, err)
		}
	}

	var c Credential
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("credential: decode: %w", err)
	}
	return &c, nil
}

// Save implements Store. The file is replaced atomically.
func (f *FileStore) Save(_ context.Context, c Credential) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("credential: encode: %w", err)
	}
	env := fileEnvelope{Version: fileVersion, Data: string(payload)}
	if f.enc != nil {
		sealed, err := f.enc.Encrypt(payload, []byte(associatedData))
		if err != nil {
			return fmt.Errorf("credential: encrypt: %w", err)
		}
		env.Algorithm = f.enc.Algorithm()
		env.Data = sealed
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("credential: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("credential: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("credential: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("credential: chmod: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("credential: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("credential: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("credential: replace %s: %w", f.path, err)
	}
	return nil
}

// Clear implements Store. Clearing a missing file is not an error.
func (f *FileStore) Clear(context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credential: remove %s: %w", f.path, err)
	}
	return nil
}

// Token implements Source.
func (f *FileStore) Token(ctx context.Context) (string, error) {
	return tokenFrom(ctx, f.Load, f.now)
}
