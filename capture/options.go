package capture

import (
	"context"

	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/notify"
)

// Option configures a VoiceCapture.
type Option func(*VoiceCapture)

// WithPlayer sets the player used by Playback.
func WithPlayer(p Player) Option {
	return func(c *VoiceCapture) { c.player = p }
}

// WithSubmitter sets the uploader used by Submit.
func WithSubmitter(s Submitter) Option {
	return func(c *VoiceCapture) { c.submitter = s }
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *VoiceCapture) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *VoiceCapture) {
		if l != nil {
			c.log = l.WithComponent("capture")
		}
	}
}

// WithRefresh sets the callback fired once after a successful submission.
func WithRefresh(fn func(ctx context.Context)) Option {
	return func(c *VoiceCapture) { c.refresh = fn }
}

// WithOnClose sets the callback that closes the capture UI after a
// successful submission.
func WithOnClose(fn func()) Option {
	return func(c *VoiceCapture) { c.onClose = fn }
}

// WithStateListener sets a callback invoked after every state transition.
// It runs without the controller lock held.
func WithStateListener(fn func(State)) Option {
	return func(c *VoiceCapture) { c.onState = fn }
}
