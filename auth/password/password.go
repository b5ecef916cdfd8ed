// Package password hashes and verifies the passwords of feedbackd users.
//
// The user table in feedbackd's config stores hashes produced by
// `feedbackd hash-password`. Both bcrypt and argon2id hashes are accepted;
// Detect picks the verifier from the stored hash's prefix.
package password

import (
	"errors"
	"fmt"
	"strings"
)

// Hasher hashes new passwords and verifies candidates against stored hashes.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify returns nil on a match and ErrMismatch otherwise.
	Verify(password, hash string) error
}

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("password: invalid password")

// Detect returns a Hasher able to verify hash. Verification reads the
// parameters embedded in the hash, so defaults are fine here.
func Detect(hash string) Hasher {
	if strings.HasPrefix(hash, argon2Prefix) {
		return NewArgon2(Argon2Params{}, 0)
	}
	return NewBcrypt(BcryptParams{}, 0)
}

func checkLength(password string, minLength, maxLength int) error {
	if n := len(password); n < minLength {
		return fmt.Errorf("password: minimum length is %d characters", minLength)
	} else if maxLength > 0 && n > maxLength {
		return fmt.Errorf("password: maximum length is %d characters", maxLength)
	}
	return nil
}
