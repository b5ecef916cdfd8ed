package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/voicefeedback/auth"
	"github.com/kbukum/voicefeedback/config"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/observability"
	"github.com/kbukum/voicefeedback/server"
	"github.com/kbukum/voicefeedback/storage"
)

const (
	serviceName = "feedbackd"
	// placeholderSecret is the jwt secret shipped in config.yml.
	placeholderSecret = "change-me"
)

// feedbackdConfig is the full service configuration, loaded from
// cmd/feedbackd/config.yml and the environment.
type feedbackdConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Feedback      feedback.Config      `yaml:"feedback" mapstructure:"feedback"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	// Transcription holds one raw section per backend, keyed by name and
	// decoded by the backend's factory.
	Transcription map[string]map[string]any `yaml:"transcription" mapstructure:"transcription"`
}

func (c *feedbackdConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Feedback.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

func (c *feedbackdConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	var errs []error
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.IsProduction() && (!c.Auth.Enabled || c.Auth.JWT.Secret == placeholderSecret) {
		errs = append(errs, errors.New("auth: production requires auth.enabled and a real auth.jwt.secret"))
	}
	if !c.Storage.Enabled {
		errs = append(errs, errors.New("storage.enabled must be true: uploads are written to storage"))
	}
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Feedback.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// transcriberConfig returns the raw section of the configured backend.
func (c *feedbackdConfig) transcriberConfig() map[string]any {
	if section, ok := c.Transcription[c.Feedback.Transcriber]; ok {
		return section
	}
	return map[string]any{}
}
