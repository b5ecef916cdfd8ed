package server

import (
	"fmt"
	"time"

	"github.com/kbukum/voicefeedback/server/middleware"
	"github.com/kbukum/voicefeedback/util"
)

// Config is the server section of feedbackd's config. Durations use Go
// syntax ("15s", "1m").
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxBodySize caps request bodies, e.g. "25MB". Audio uploads must fit.
	MaxBodySize string                `mapstructure:"max_body_size"`
	CORS        middleware.CORSConfig `mapstructure:"cors"`
}

// ApplyDefaults fills zero values. Write timeout leaves room for a slow
// upload followed by transcription.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	setDuration(&c.ReadTimeout, 30*time.Second)
	setDuration(&c.WriteTimeout, 60*time.Second)
	setDuration(&c.IdleTimeout, 2*time.Minute)
	setDuration(&c.ShutdownTimeout, 5*time.Second)
	if c.MaxBodySize == "" {
		c.MaxBodySize = "25MB"
	}
	c.CORS.ApplyDefaults()
}

func setDuration(d *time.Duration, def time.Duration) {
	if *d == 0 {
		*d = def
	}
}

// Validate rejects out-of-range ports, negative timeouts and unparseable
// body sizes.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("server.%s must be non-negative (got: %s)", name, d)
		}
	}
	if c.MaxBodySize != "" && util.ParseSize(c.MaxBodySize, 0) <= 0 {
		return fmt.Errorf("server.max_body_size is not a valid size (got: %q)", c.MaxBodySize)
	}
	return nil
}

// Addr is the host:port the server binds.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
