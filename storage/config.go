package storage

import (
	"errors"
	"fmt"

	"github.com/kbukum/voicefeedback/util"
)

// Provider names.
const (
	ProviderLocal  = "local"
	ProviderMemory = "memory"
)

// Defaults.
const (
	DefaultProvider    = ProviderLocal
	DefaultBasePath    = "./data/audio"
	DefaultMaxFileSize = "10MB"
)

// Config holds storage configuration.
type Config struct {
	// Enabled controls whether the storage component starts a backend.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Provider selects the backend: "local" or "memory".
	Provider string `yaml:"provider" mapstructure:"provider"`
	// BasePath is the root directory of the local backend.
	BasePath string `yaml:"base_path" mapstructure:"base_path"`
	// MaxFileSize bounds a single upload, e.g. "10MB".
	MaxFileSize string `yaml:"max_file_size" mapstructure:"max_file_size"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.MaxFileSize == "" {
		c.MaxFileSize = DefaultMaxFileSize
	}
}

// Validate checks the configuration for the selected provider.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderLocal:
		if c.BasePath == "" {
			errs = append(errs, errors.New("storage: base_path is required for local provider"))
		}
	case ProviderMemory:
	default:
		errs = append(errs, fmt.Errorf("storage: unsupported provider %q", c.Provider))
	}
	if _, err := c.MaxBytes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// MaxBytes parses MaxFileSize.
func (c *Config) MaxBytes() (int64, error) {
	n := util.ParseSize(c.MaxFileSize, 0)
	if n <= 0 {
		return 0, fmt.Errorf("storage: invalid max_file_size %q", c.MaxFileSize)
	}
	return n, nil
}
