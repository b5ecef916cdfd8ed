package password

import "fmt"

// Algorithm names a hash scheme accepted by `feedbackd hash-password`.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Config is the auth.password section of feedbackd's config.
//
//	password:
//	  algorithm: bcrypt
//	  min_length: 8
//	  bcrypt:
//	    cost: 12
type Config struct {
	Algorithm Algorithm    `mapstructure:"algorithm"`
	MinLength int          `mapstructure:"min_length"`
	Bcrypt    BcryptParams `mapstructure:"bcrypt"`
	Argon2    Argon2Params `mapstructure:"argon2"`
}

// BcryptParams tunes bcrypt. Cost must lie in [4, 31].
type BcryptParams struct {
	Cost int `mapstructure:"cost"`
}

// Argon2Params tunes argon2id.
type Argon2Params struct {
	Time      uint32 `mapstructure:"time"`
	MemoryKiB uint32 `mapstructure:"memory_kib"`
	Threads   uint8  `mapstructure:"threads"`
}

const (
	defaultMinLength  = 8
	defaultBcryptCost = 12
)

func (p *BcryptParams) applyDefaults() {
	if p.Cost == 0 {
		p.Cost = defaultBcryptCost
	}
}

func (p *Argon2Params) applyDefaults() {
	if p.Time == 0 {
		p.Time = 1
	}
	if p.MemoryKiB == 0 {
		p.MemoryKiB = 64 * 1024
	}
	if p.Threads == 0 {
		p.Threads = 4
	}
}

// ApplyDefaults fills zero values: bcrypt at cost 12, argon2id at t=1,
// m=64MiB, p=4 and an 8 character minimum.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmBcrypt
	}
	if c.MinLength == 0 {
		c.MinLength = defaultMinLength
	}
	c.Bcrypt.applyDefaults()
	c.Argon2.applyDefaults()
}

// Validate checks the selected algorithm and its parameters.
func (c *Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("password.min_length must be >= 1 (got: %d)", c.MinLength)
	}
	switch c.Algorithm {
	case AlgorithmBcrypt:
		if c.Bcrypt.Cost < 4 || c.Bcrypt.Cost > 31 {
			return fmt.Errorf("password.bcrypt.cost must be between 4 and 31 (got: %d)", c.Bcrypt.Cost)
		}
	case AlgorithmArgon2id:
		if c.Argon2.Time < 1 || c.Argon2.MemoryKiB < 8*uint32(c.Argon2.Threads) || c.Argon2.Threads < 1 {
			return fmt.Errorf("password.argon2: invalid parameters %+v", c.Argon2)
		}
	default:
		return fmt.Errorf("password.algorithm must be bcrypt or argon2id (got: %q)", c.Algorithm)
	}
	return nil
}

// NewHasher returns the hasher selected by cfg.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	if cfg.Algorithm == AlgorithmArgon2id {
		return NewArgon2(cfg.Argon2, cfg.MinLength)
	}
	return NewBcrypt(cfg.Bcrypt, cfg.MinLength)
}
