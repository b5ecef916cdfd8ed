package encryption

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Encryptor seals and opens secrets. Ciphertexts are base64 strings so they
// can be stored in text files.
type Encryptor interface {
	Encrypt(plaintext, associatedData []byte) (string, error)
	Decrypt(ciphertext string, associatedData []byte) ([]byte, error)
	Algorithm() Algorithm
}

// Algorithm names an AEAD construction.
type Algorithm string

const (
	// AlgorithmAESGCM uses AES-256 in GCM mode.
	AlgorithmAESGCM Algorithm = "aes-256-gcm"
	// AlgorithmChaCha20 uses ChaCha20-Poly1305, faster on hosts without AES-NI.
	AlgorithmChaCha20 Algorithm = "chacha20-poly1305"
)

const defaultSalt = "voicefeedback/credential/v1"

// Option configures New.
type Option func(*options)

type options struct {
	algorithm Algorithm
	salt      []byte
}

// WithAlgorithm selects the AEAD. Defaults to AES-256-GCM.
func WithAlgorithm(alg Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// WithSalt overrides the HKDF salt.
func WithSalt(salt []byte) Option {
	return func(o *options) { o.salt = salt }
}

// ParseAlgorithm maps a config value to an Algorithm. Empty selects AES-256-GCM.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmAESGCM:
		return AlgorithmAESGCM, nil
	case AlgorithmChaCha20:
		return AlgorithmChaCha20, nil
	default:
		return "", fmt.Errorf("unknown encryption algorithm %q", s)
	}
}

// New derives a 256-bit key from passphrase and returns an Encryptor for
// the selected algorithm.
func New(passphrase string, opts ...Option) (Encryptor, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("encryption passphrase is empty")
	}
	o := &options{algorithm: AlgorithmAESGCM, salt: []byte(defaultSalt)}
	for _, opt := range opts {
		opt(o)
	}

	key, err := deriveKey(passphrase, o.salt, o.algorithm)
	if err != nil {
		return nil, err
	}

	switch o.algorithm {
	case AlgorithmChaCha20:
		return newChaCha20(key)
	case AlgorithmAESGCM:
		return newAESGCM(key)
	default:
		return nil, fmt.Errorf("unknown encryption algorithm %q", o.algorithm)
	}
}

func deriveKey(passphrase string, salt []byte, alg Algorithm) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(passphrase), salt, []byte(alg))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}
