package portaudio

import (
	"context"
	"fmt"

	pa "github.com/gordonklaus/portaudio"

	"github.com/kbukum/voicefeedback/capture"
	apperrors "github.com/kbukum/voicefeedback/errors"
)

var _ capture.Player = (*Player)(nil)

// Player plays WAV artifacts on the default output device.
type Player struct {
	host            *Host
	framesPerBuffer int
}

// Play blocks until the artifact has been played or ctx is done.
func (p *Player) Play(ctx context.Context, a *capture.Artifact) error {
	if err := p.host.ready(ctx); err != nil {
		return err
	}
	buf, f, _, err := capture.DecodeWAV(a.Data)
	if err != nil {
		return apperrors.InvalidInput("audio", fmt.Sprintf("cannot play %s: %v", a.MediaType, err))
	}

	out := make([]int16, p.framesPerBuffer*f.Channels)
	st, err := pa.OpenDefaultStream(0, f.Channels, float64(f.SampleRate), p.framesPerBuffer, out)
	if err != nil {
		return apperrors.UnsupportedPlatform(err)
	}
	defer st.Close()
	if err := st.Start(); err != nil {
		return apperrors.UnsupportedPlatform(err)
	}
	defer st.Stop()

	samples := buf.Data
	for off := 0; off < len(samples); off += len(out) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := copySamples(out, samples[off:])
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		if err := st.Write(); err != nil && err != pa.OutputUnderflowed {
			return fmt.Errorf("portaudio: write: %w", err)
		}
	}
	return nil
}

// copySamples copies decoded samples into the int16 output buffer.
func copySamples(dst []int16, src []int) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = int16(src[i])
	}
	return n
}
