package portaudio

import "fmt"

// Config configures microphone capture.
type Config struct {
	SampleRate      int `yaml:"sample_rate" mapstructure:"sample_rate"`
	Channels        int `yaml:"channels" mapstructure:"channels"`
	FramesPerBuffer int `yaml:"frames_per_buffer" mapstructure:"frames_per_buffer"`
}

// ApplyDefaults fills unset fields: 16 kHz mono, 1024-frame buffers.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.FramesPerBuffer == 0 {
		c.FramesPerBuffer = 1024
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate must be between 8000 and 192000 (got: %d)", c.SampleRate)
	}
	if c.Channels < 1 || c.Channels > 2 {
		return fmt.Errorf("audio.channels must be 1 or 2 (got: %d)", c.Channels)
	}
	if c.FramesPerBuffer < 64 {
		return fmt.Errorf("audio.frames_per_buffer must be at least 64 (got: %d)", c.FramesPerBuffer)
	}
	return nil
}
