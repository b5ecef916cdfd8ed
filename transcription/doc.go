// Package transcription defines the speech-to-text provider interface used
// by the feedback service to attach a transcript to short voice uploads.
//
// # Backends
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//
// # Usage
//
//	reg := transcription.NewRegistry()
//	whisper.Register(reg)
//	p, err := reg.Create(cfg.Provider, cfg.Options)
//	res, err := p.Transcribe(ctx, transcription.Request{Audio: wav, FileName: "feedback.wav"})
package transcription
