package feedback

import (
	"fmt"
	"time"

	"github.com/kbukum/voicefeedback/util"
)

const (
	defaultMaxTranscription = 30 * time.Second
	defaultMaxAudioSize     = "25MB"
	defaultKeyPrefix        = "voice"
)

// Config configures the receiving side.
type Config struct {
	// Transcribe enables speech-to-text for short recordings.
	Transcribe bool `yaml:"transcribe" mapstructure:"transcribe"`
	// Transcriber names the registered transcription backend.
	Transcriber string `yaml:"transcriber" mapstructure:"transcriber"`
	// MaxTranscriptionDuration skips transcription for longer recordings.
	MaxTranscriptionDuration time.Duration `yaml:"max_transcription_duration" mapstructure:"max_transcription_duration"`
	// Language hint passed to the transcriber.
	Language string `yaml:"language" mapstructure:"language"`
	// MaxAudioSize bounds a single upload, e.g. "25MB".
	MaxAudioSize string `yaml:"max_audio_size" mapstructure:"max_audio_size"`
	// KeyPrefix is the first storage path segment.
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.MaxTranscriptionDuration <= 0 {
		c.MaxTranscriptionDuration = defaultMaxTranscription
	}
	if c.MaxAudioSize == "" {
		c.MaxAudioSize = defaultMaxAudioSize
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = defaultKeyPrefix
	}
	if c.Transcribe && c.Transcriber == "" {
		c.Transcriber = "whisper"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := c.maxAudioBytes(); err != nil {
		return err
	}
	if util.SafePathSegment(c.KeyPrefix) != c.KeyPrefix {
		return fmt.Errorf("feedback: key_prefix %q is not a safe path segment", c.KeyPrefix)
	}
	return nil
}

func (c *Config) maxAudioBytes() (int64, error) {
	n := util.ParseSize(c.MaxAudioSize, 0)
	if n <= 0 {
		return 0, fmt.Errorf("feedback: invalid max_audio_size %q", c.MaxAudioSize)
	}
	return n, nil
}
