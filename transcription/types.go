package transcription

import "time"

// Request is one transcription call.
type Request struct {
	// Audio is the encoded recording, usually WAV.
	Audio []byte `json:"-"`
	// FileName is reported to the backend; it only hints the container format.
	FileName string `json:"file_name"`
	// MediaType of Audio, e.g. "audio/wav".
	MediaType string `json:"media_type,omitempty"`
	// Language overrides the backend's configured language.
	Language string `json:"language,omitempty"`
	// Model overrides the backend's configured model.
	Model string `json:"model,omitempty"`
}

// Response is a transcription result.
type Response struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the end of the last segment.
	Duration time.Duration `json:"duration,omitempty"`
	Language string        `json:"language,omitempty"`
}

// Segment is a time-aligned part of a transcript, in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
