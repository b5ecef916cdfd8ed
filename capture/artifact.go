package capture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// FileName is the multipart file name of an uploaded recording.
	FileName = "feedback.wav"
	// MediaTypeWAV is the media type of assembled PCM recordings.
	MediaTypeWAV = "audio/wav"
)

// Artifact is the assembled recording of a stopped session.
type Artifact struct {
	Data      []byte
	MediaType string
	FileName  string
	// Duration is zero when the device delivered an opaque container.
	Duration time.Duration
}

// Size returns the artifact size in bytes.
func (a *Artifact) Size() int { return len(a.Data) }

// assemble joins chunks into an Artifact. PCM is wrapped into a WAV
// container; anything else is concatenated and tagged with the format's
// media type.
func assemble(f Format, chunks [][]byte) (*Artifact, error) {
	var raw bytes.Buffer
	for _, c := range chunks {
		raw.Write(c)
	}

	if f.Encoding != EncodingPCM16LE {
		mt := f.MediaType
		if mt == "" {
			mt = "application/octet-stream"
		}
		return &Artifact{Data: raw.Bytes(), MediaType: mt, FileName: FileName}, nil
	}

	data, err := EncodeWAV(raw.Bytes(), f)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Data:      data,
		MediaType: MediaTypeWAV,
		FileName:  FileName,
		Duration:  f.duration(raw.Len()),
	}, nil
}

// EncodeWAV wraps little-endian 16-bit PCM into a WAV container. A trailing
// odd byte is dropped.
func EncodeWAV(pcm []byte, f Format) ([]byte, error) {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return nil, fmt.Errorf("capture: invalid PCM format %d Hz x %d channels", f.SampleRate, f.Channels)
	}
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	out := &seekBuffer{}
	enc := wav.NewEncoder(out, f.SampleRate, 16, f.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("capture: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("capture: finalize wav: %w", err)
	}
	return out.Bytes(), nil
}

// ErrNotWAV is returned when data is not a PCM WAV file.
var ErrNotWAV = errors.New("capture: not a PCM wav file")

// DecodeWAV reads a PCM WAV file and returns its samples, format and
// duration.
func DecodeWAV(data []byte) (*audio.IntBuffer, Format, time.Duration, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, Format{}, 0, ErrNotWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Format{}, 0, fmt.Errorf("capture: decode wav: %w", err)
	}
	f := Format{
		Encoding:   EncodingPCM16LE,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		MediaType:  MediaTypeWAV,
	}
	var d time.Duration
	if f.SampleRate > 0 && f.Channels > 0 {
		frames := len(buf.Data) / f.Channels
		d = time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
	}
	return buf, f, d, nil
}

// WAVDuration returns the playing time of a WAV file, computed from its
// sample count.
func WAVDuration(data []byte) (time.Duration, error) {
	_, _, d, err := DecodeWAV(data)
	return d, err
}

// seekBuffer is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch chunk sizes on Close.
type seekBuffer struct {
	buf []byte
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	end := s.pos + len(p)
	if end > len(s.buf) {
		if end > cap(s.buf) {
			grown := make([]byte, end, 2*end)
			copy(grown, s.buf)
			s.buf = grown
		} else {
			s.buf = s.buf[:end]
		}
	}
	copy(s.buf[s.pos:], p)
	s.pos = end
	return len(p), nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(s.pos)
	case io.SeekEnd:
		base = int64(len(s.buf))
	default:
		return 0, errors.New("capture: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("capture: negative position")
	}
	s.pos = int(next)
	return next, nil
}

func (s *seekBuffer) Bytes() []byte { return s.buf }
