package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix  = "$argon2id$"
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

var errArgon2Format = errors.New("password: invalid argon2id hash format")

// Argon2 hashes with argon2id and encodes results in the PHC string format
// $argon2id$v=19$m=<KiB>,t=<time>,p=<threads>$<salt>$<key>.
type Argon2 struct {
	params    Argon2Params
	minLength int
}

// NewArgon2 returns an argon2id hasher. Zero params and a zero minLength
// take the package defaults.
func NewArgon2(p Argon2Params, minLength int) *Argon2 {
	p.applyDefaults()
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	return &Argon2{params: p, minLength: minLength}
}

func (h *Argon2) Hash(password string) (string, error) {
	if err := checkLength(password, h.minLength, 0); err != nil {
		return "", err
	}
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}
	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, argon2KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

func (h *Argon2) Verify(password, hash string) error {
	p, salt, key, err := decodeArgon2(hash)
	if err != nil {
		return err
	}
	got := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(got, key) != 1 {
		return ErrMismatch
	}
	return nil
}

// decodeArgon2 splits a PHC string into its parameters, salt and key.
func decodeArgon2(hash string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params
	if !strings.HasPrefix(hash, argon2Prefix) {
		return p, nil, nil, errArgon2Format
	}
	fields := strings.Split(strings.TrimPrefix(hash, argon2Prefix), "$")
	if len(fields) != 4 {
		return p, nil, nil, errArgon2Format
	}

	var version int
	if _, err := fmt.Sscanf(fields[0], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("password: unsupported argon2 version %q", fields[0])
	}
	if _, err := fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("password: argon2 params: %w", err)
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(fields[2])
	if err != nil {
		return p, nil, nil, fmt.Errorf("password: argon2 salt: %w", err)
	}
	key, err := enc.DecodeString(fields[3])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errArgon2Format
	}
	return p, salt, key, nil
}
