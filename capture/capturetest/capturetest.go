// Package capturetest provides scripted capture devices, players and
// submitters for tests.
package capturetest

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/kbukum/voicefeedback/capture"
)

// Device is a scripted capture.Device.
type Device struct {
	format capture.Format

	mu       sync.Mutex
	openErr  error
	probeErr error
	gate     chan struct{}
	entered  chan struct{}
	streams  []*Stream
}

// NewDevice returns a Device producing streams of format f.
func NewDevice(f capture.Format) *Device {
	return &Device{format: f}
}

// FailOpen makes the next Open calls fail with err.
func (d *Device) FailOpen(err error) *Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openErr = err
	return d
}

// FailProbe makes Probe report err.
func (d *Device) FailProbe(err error) *Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.probeErr = err
	return d
}

// Hold makes Open block until Grant is called, like a pending permission
// prompt.
func (d *Device) Hold() *Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gate = make(chan struct{})
	d.entered = make(chan struct{})
	return d
}

// Entered is closed once an Open call is blocked on Hold.
func (d *Device) Entered() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entered
}

// Grant releases an Open blocked by Hold.
func (d *Device) Grant() {
	d.mu.Lock()
	gate := d.gate
	d.gate = nil
	d.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Probe implements capture.Prober.
func (d *Device) Probe(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.probeErr
}

// Open implements capture.Device.
func (d *Device) Open(ctx context.Context) (capture.Stream, error) {
	d.mu.Lock()
	gate := d.gate
	if d.entered != nil {
		select {
		case <-d.entered:
		default:
			close(d.entered)
		}
	}
	d.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openErr != nil {
		return nil, d.openErr
	}
	s := &Stream{format: d.format, ch: make(chan []byte, 256)}
	d.streams = append(d.streams, s)
	return s, nil
}

// Opens returns how many streams were opened.
func (d *Device) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

// Last returns the most recently opened stream, or nil.
func (d *Device) Last() *Stream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

// Released reports whether every opened stream has been closed.
func (d *Device) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.streams {
		if !s.Closed() {
			return false
		}
	}
	return true
}

// Stream is a capture.Stream fed by Send.
type Stream struct {
	format capture.Format

	mu     sync.Mutex
	ch     chan []byte
	closed bool
	closes int
}

// Format implements capture.Stream.
func (s *Stream) Format() capture.Format { return s.format }

// Chunks implements capture.Stream.
func (s *Stream) Chunks() <-chan []byte { return s.ch }

// Send delivers a chunk as the device would. It reports false once the
// stream is closed.
func (s *Stream) Send(chunk []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.ch <- chunk
	return true
}

// Close implements capture.Stream.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

// Closed reports whether Close was called.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Player records the artifacts it is asked to play.
type Player struct {
	mu    sync.Mutex
	Err   error
	plays []*capture.Artifact
}

// Play implements capture.Player.
func (p *Player) Play(_ context.Context, a *capture.Artifact) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays = append(p.plays, a)
	return p.Err
}

// Plays returns how many times Play was called.
func (p *Player) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.plays)
}

// Submission is one recorded Submit call.
type Submission struct {
	Artifact  *capture.Artifact
	ContextID string
}

// Submitter records submissions and answers with Err.
type Submitter struct {
	mu    sync.Mutex
	Err   error
	calls []Submission
	// Block, when set, is waited on before answering.
	Block chan struct{}
}

// Submit implements capture.Submitter.
func (s *Submitter) Submit(ctx context.Context, a *capture.Artifact, contextID string) error {
	s.mu.Lock()
	s.calls = append(s.calls, Submission{Artifact: a, ContextID: contextID})
	block := s.Block
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// Calls returns the recorded submissions.
func (s *Submitter) Calls() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.calls...)
}

// Tone returns n samples of 16-bit little-endian PCM of a simple ramp,
// enough to tell chunks apart in assertions.
func Tone(n int, start int16) []byte {
	out := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(start+int16(i)))
	}
	return out
}
