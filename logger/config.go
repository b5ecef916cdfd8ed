package logger

import (
	"fmt"
	"slices"
)

var (
	levels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	formats = []string{"console", "json"}
	outputs = []string{"stdout", "stderr"}
)

// Config is the logging section shared by feedbackd and voicefeedback.
type Config struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	NoColor   bool   `mapstructure:"no_color"`
	Timestamp bool   `mapstructure:"timestamp"`
	Caller    bool   `mapstructure:"caller"`
	// ServiceName tags console output; filled from the service config when empty.
	ServiceName string `mapstructure:"-"`
}

// ApplyDefaults selects info-level console output on stdout with timestamps.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	if !slices.Contains(levels, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %q)", levels, c.Level)
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %q)", formats, c.Format)
	}
	if c.Output != "" && !slices.Contains(outputs, c.Output) {
		return fmt.Errorf("logging.output must be one of %v (got: %q)", outputs, c.Output)
	}
	return nil
}
