package capture

import (
	"context"
	"time"
)

// Encoding describes the bytes a Stream delivers.
type Encoding string

const (
	// EncodingPCM16LE is interleaved signed 16-bit little-endian PCM. It is
	// wrapped into a WAV container when the recording stops.
	EncodingPCM16LE Encoding = "pcm16le"
	// EncodingOpaque is an already-encoded container; chunks are
	// concatenated verbatim.
	EncodingOpaque Encoding = "opaque"
)

// Format is what a Stream produces.
type Format struct {
	Encoding   Encoding
	SampleRate int
	Channels   int
	// MediaType tags opaque recordings, e.g. "audio/webm".
	MediaType string
}

// DefaultFormat is 16 kHz mono PCM, the input speech-to-text models expect.
var DefaultFormat = Format{Encoding: EncodingPCM16LE, SampleRate: 16000, Channels: 1}

// duration returns the playing time of n bytes of PCM, or zero when the
// format carries no timing information.
func (f Format) duration(n int) time.Duration {
	if f.Encoding != EncodingPCM16LE || f.SampleRate <= 0 || f.Channels <= 0 {
		return 0
	}
	frames := n / (2 * f.Channels)
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// Device is an audio input. Open requests access to the microphone and
// starts capturing; it may block while the user answers a permission prompt.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Prober is implemented by devices that can report missing capture
// capability before any access is requested.
type Prober interface {
	Probe(ctx context.Context) error
}

// Stream is an open capture. Chunks delivers audio in order; after Close the
// device is released and Chunks is closed once every chunk captured before
// the Close has been delivered.
type Stream interface {
	Format() Format
	Chunks() <-chan []byte
	Close() error
}

// Player plays an artifact for review.
type Player interface {
	Play(ctx context.Context, a *Artifact) error
}

// Submitter uploads an artifact together with the context id it belongs to.
// A non-2xx answer is reported as a SubmissionFailed error.
type Submitter interface {
	Submit(ctx context.Context, a *Artifact, contextID string) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, a *Artifact, contextID string) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, a *Artifact, contextID string) error {
	return f(ctx, a, contextID)
}
