package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/voicefeedback/capture/portaudio"
	"github.com/kbukum/voicefeedback/config"
	"github.com/kbukum/voicefeedback/credential"
	"github.com/kbukum/voicefeedback/encryption"
	"github.com/kbukum/voicefeedback/httpclient"
	"github.com/kbukum/voicefeedback/version"
)

const (
	appName        = "voicefeedback"
	defaultBaseURL = "http://localhost:8080"
)

// cliConfig is the client configuration, loaded from config.yml under the
// user config dir (or --config) and the environment.
type cliConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server     httpclient.Config `yaml:"server" mapstructure:"server"`
	Credential credentialConfig  `yaml:"credential" mapstructure:"credential"`
	Audio      portaudio.Config  `yaml:"audio" mapstructure:"audio"`
	Notify     notifyConfig      `yaml:"notify" mapstructure:"notify"`
}

type credentialConfig struct {
	// Path of the credential file; empty uses the user config dir.
	Path string `yaml:"path" mapstructure:"path"`
	// Passphrase encrypts the stored token when set.
	Passphrase string `yaml:"passphrase" mapstructure:"passphrase"`
	Algorithm  string `yaml:"algorithm" mapstructure:"algorithm"`
}

type notifyConfig struct {
	Desktop bool   `yaml:"desktop" mapstructure:"desktop"`
	Icon    string `yaml:"icon" mapstructure:"icon"`
}

// ApplyDefaults keeps the log off stdout, which belongs to the prompt.
func (c *cliConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaultBaseURL
	}
	if c.Server.UserAgent == "" {
		c.Server.UserAgent = version.UserAgent(appName)
	}
	c.Server.ApplyDefaults()
	c.Audio.ApplyDefaults()
}

func (c *cliConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	var errs []error
	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := c.Audio.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := encryption.ParseAlgorithm(c.Credential.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("credential: %w", err))
	}
	return errors.Join(errs...)
}

func loadConfig(path string) (*cliConfig, error) {
	var cfg cliConfig
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newCredentialStore opens the token file, encrypted when a passphrase is
// configured.
func newCredentialStore(cfg credentialConfig) (*credential.FileStore, error) {
	var opts []credential.FileOption
	if cfg.Passphrase != "" {
		alg, err := encryption.ParseAlgorithm(cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		enc, err := encryption.New(cfg.Passphrase, encryption.WithAlgorithm(alg))
		if err != nil {
			return nil, err
		}
		opts = append(opts, credential.WithEncryptor(enc))
	}
	return credential.NewFileStore(cfg.Path, opts...)
}
