package portaudio

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"github.com/kbukum/voicefeedback/capture"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
)

var (
	_ capture.Device = (*Device)(nil)
	_ capture.Prober = (*Device)(nil)
)

// Device captures 16-bit PCM from the default input device.
type Device struct {
	host *Host
	cfg  Config
}

// Probe reports UnsupportedPlatform when PortAudio cannot start or there is
// no input device.
func (d *Device) Probe(ctx context.Context) error {
	if err := d.host.ready(ctx); err != nil {
		return err
	}
	if _, err := pa.DefaultInputDevice(); err != nil {
		return apperrors.UnsupportedPlatform(err)
	}
	return nil
}

// Open opens and starts an input stream. The operating system may prompt
// for microphone access here; a refusal surfaces as PermissionDenied.
func (d *Device) Open(ctx context.Context) (capture.Stream, error) {
	if err := d.host.ready(ctx); err != nil {
		return nil, err
	}

	in := make([]int16, d.cfg.FramesPerBuffer*d.cfg.Channels)
	st, err := pa.OpenDefaultStream(d.cfg.Channels, 0, float64(d.cfg.SampleRate), d.cfg.FramesPerBuffer, in)
	if err != nil {
		return nil, apperrors.PermissionDenied(err)
	}
	if err := st.Start(); err != nil {
		_ = st.Close()
		return nil, apperrors.PermissionDenied(err)
	}

	s := &stream{
		pa:  st,
		in:  in,
		log: d.host.log,
		format: capture.Format{
			Encoding:   capture.EncodingPCM16LE,
			SampleRate: d.cfg.SampleRate,
			Channels:   d.cfg.Channels,
			MediaType:  capture.MediaTypeWAV,
		},
		ch:   make(chan []byte, 64),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// stream reads blocking buffers from PortAudio on its own goroutine.
type stream struct {
	pa     *pa.Stream
	in     []int16
	format capture.Format
	log    *logger.Logger

	ch   chan []byte
	quit chan struct{}
	done chan struct{}
	once sync.Once
	err  error
}

func (s *stream) Format() capture.Format { return s.format }
func (s *stream) Chunks() <-chan []byte  { return s.ch }

func (s *stream) run() {
	defer close(s.done)
	defer close(s.ch)
	pump(s.quit, s.ch, s.read, s.log)
}

// errSkip marks a read whose buffer should be dropped without stopping.
var errSkip = errors.New("skip buffer")

func (s *stream) read() ([]byte, error) {
	if err := s.pa.Read(); err != nil {
		// Input overflow drops samples but the stream keeps running.
		if err == pa.InputOverflowed {
			return nil, errSkip
		}
		return nil, err
	}
	return int16ToBytes(s.in), nil
}

// pump forwards buffers from read to out until quit is closed or read
// fails. quit is only checked between reads: a buffer already read is
// always delivered, so nothing captured before Close is lost. The reader
// of out must keep draining until out is closed.
func pump(quit <-chan struct{}, out chan<- []byte, read func() ([]byte, error), log *logger.Logger) {
	for {
		select {
		case <-quit:
			return
		default:
		}
		buf, err := read()
		if errors.Is(err, errSkip) {
			log.Debug("Audio input overflowed")
			continue
		}
		if err != nil {
			log.Warn("Audio read failed", logger.ErrorFields("read", err))
			return
		}
		out <- buf
	}
}

// Close stops the reader, then stops and closes the PortAudio stream. The
// chunk channel is closed once the reader has exited.
func (s *stream) Close() error {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		if err := s.pa.Stop(); err != nil {
			s.err = err
		}
		if err := s.pa.Close(); err != nil && s.err == nil {
			s.err = err
		}
	})
	return s.err
}

func int16ToBytes(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}
