package capture

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/voicefeedback/logger"
)

// drainTimeout bounds the wait for a closed stream's collector.
var drainTimeout = 5 * time.Second

// session is one recording, from the granted microphone request until the
// artifact is submitted or discarded.
type session struct {
	id      string
	format  Format
	started time.Time

	mu       sync.Mutex
	state    State
	chunks   [][]byte
	size     int
	artifact *Artifact

	stream Stream
	done   chan struct{}
}

func newSession(stream Stream) *session {
	return &session{
		id:      uuid.NewString(),
		format:  stream.Format(),
		started: time.Now(),
		state:   Recording,
		stream:  stream,
		done:    make(chan struct{}),
	}
}

// collect appends chunks until the stream's channel is closed.
func (s *session) collect() {
	defer close(s.done)
	for chunk := range s.stream.Chunks() {
		s.append(chunk)
	}
}

// append stores a copy of chunk. Empty chunks and chunks arriving outside
// Recording are dropped.
func (s *session) append(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Recording {
		return false
	}
	s.chunks = append(s.chunks, append([]byte(nil), chunk...))
	s.size += len(chunk)
	return true
}

// release closes the stream and waits for the collector to drain every
// chunk already delivered, for at most drainTimeout. Only one goroutine
// releases a session.
func (s *session) release(ctx context.Context, log *logger.Logger) {
	if s.stream == nil {
		return
	}
	if err := s.stream.Close(); err != nil {
		log.Warn("Releasing microphone failed", logger.Fields(logger.FieldSessionID, s.id, logger.FieldError, err))
	}
	timer := time.NewTimer(drainTimeout)
	defer timer.Stop()
	select {
	case <-s.done:
	case <-timer.C:
		log.Warn("Audio stream did not drain", logger.Fields(logger.FieldSessionID, s.id, logger.FieldDuration, drainTimeout))
	case <-ctx.Done():
		log.Warn("Stopped waiting for audio stream to drain", logger.Fields(logger.FieldSessionID, s.id, logger.FieldError, ctx.Err()))
	}
	s.stream = nil
}

// stop assembles the artifact and moves the session to Stopped.
func (s *session) stop() (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := assemble(s.format, s.chunks)
	if err != nil {
		return nil, err
	}
	s.state = Stopped
	s.artifact = a
	return a, nil
}

// discard drops chunks and artifact and moves the session to Idle.
func (s *session) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Idle
	s.chunks = nil
	s.size = 0
	s.artifact = nil
}

func (s *session) snapshot() (State, *Artifact, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.artifact, s.size
}
