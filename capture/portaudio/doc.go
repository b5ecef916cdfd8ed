// Package portaudio provides the microphone capture.Device and speaker
// capture.Player on top of the PortAudio library, plus the Host component
// that owns the library's lifetime.
//
// Requires the PortAudio C library (portaudio19-dev on Debian/Ubuntu,
// brew install portaudio on macOS).
package portaudio
