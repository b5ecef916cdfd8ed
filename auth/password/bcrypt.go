package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates longer input, so Hash rejects it.
const bcryptMaxLength = 72

// Bcrypt hashes with golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost      int
	minLength int
}

// NewBcrypt returns a bcrypt hasher. Zero params and a zero minLength take
// the package defaults.
func NewBcrypt(p BcryptParams, minLength int) *Bcrypt {
	p.applyDefaults()
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	return &Bcrypt{cost: p.Cost, minLength: minLength}
}

func (h *Bcrypt) Hash(password string) (string, error) {
	if err := checkLength(password, h.minLength, bcryptMaxLength); err != nil {
		return "", err
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt: %w", err)
	}
	return string(out), nil
}

func (h *Bcrypt) Verify(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrMismatch
	}
	return nil
}
