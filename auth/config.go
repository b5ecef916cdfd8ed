package auth

import (
	"fmt"

	"github.com/kbukum/voicefeedback/auth/jwt"
	"github.com/kbukum/voicefeedback/auth/password"
)

// User is one entry of the static user table. PasswordHash holds a bcrypt
// or argon2id hash.
type User struct {
	Username     string   `mapstructure:"username"`
	PasswordHash string   `mapstructure:"password_hash"`
	Roles        []string `mapstructure:"roles"`
}

// Config holds authentication configuration for feedbackd.
type Config struct {
	// Enabled controls whether the feedback routes require a bearer token.
	Enabled bool `mapstructure:"enabled"`

	JWT      jwt.Config      `mapstructure:"jwt"`
	Password password.Config `mapstructure:"password"`
	Users    []User          `mapstructure:"users"`
}

// ApplyDefaults sets defaults on the sub-configurations.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks the configuration when auth is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	seen := make(map[string]bool, len(c.Users))
	for i, u := range c.Users {
		if u.Username == "" || u.PasswordHash == "" {
			return fmt.Errorf("auth.users[%d]: username and password_hash are required", i)
		}
		if seen[u.Username] {
			return fmt.Errorf("auth.users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = true
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
func (c *Config) Describe() string {
	if !c.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("JWT(%s) TTL=%s users=%d", c.JWT.Method, c.JWT.AccessTokenTTL, len(c.Users))
}
