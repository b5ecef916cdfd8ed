package transcription

import (
	"context"

	"github.com/kbukum/voicefeedback/provider"
)

// Provider is implemented by speech-to-text backends.
type Provider interface {
	provider.Provider

	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// NewRegistry creates a registry for transcription backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
