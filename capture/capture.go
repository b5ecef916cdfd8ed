package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/notify"
)

// MsgSubmitted is shown after a successful upload.
const MsgSubmitted = "Voice feedback submitted successfully"

// VoiceCapture is the recording controller behind the capture UI. Its
// operations are serialized; audio arrives on the device stream and is
// collected in the background while Recording.
type VoiceCapture struct {
	device    Device
	player    Player
	submitter Submitter
	notifier  notify.Notifier
	log       *logger.Logger
	refresh   func(ctx context.Context)
	onClose   func()
	onState   func(State)

	mu         sync.Mutex
	sess       *session
	pending    bool
	abandon    bool
	stopping   bool
	submitting bool
}

// New returns a VoiceCapture recording from device. A nil device means the
// platform has no capture capability.
func New(device Device, opts ...Option) *VoiceCapture {
	c := &VoiceCapture{
		device:   device,
		notifier: notify.Nop,
		log:      logger.GetGlobalLogger().WithComponent("capture"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *VoiceCapture) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *VoiceCapture) stateLocked() State {
	if c.sess == nil {
		return Idle
	}
	st, _, _ := c.sess.snapshot()
	return st
}

// Artifact returns the recording while Stopped, otherwise nil.
func (c *VoiceCapture) Artifact() *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil
	}
	st, a, _ := c.sess.snapshot()
	if st != Stopped {
		return nil
	}
	return a
}

// Start requests microphone access and begins recording. From Stopped the
// previous recording is discarded first. The state is Idle on any failure.
func (c *VoiceCapture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return c.fail(ctx, "start", apperrors.InvalidState("start", "requesting microphone access"))
	}
	if c.submitting {
		c.mu.Unlock()
		return c.fail(ctx, "start", apperrors.InvalidState("start", "submitting"))
	}
	st := c.stateLocked()
	if st == Recording {
		c.mu.Unlock()
		return c.fail(ctx, "start", apperrors.InvalidState("start", st.String()))
	}
	if c.device == nil {
		c.mu.Unlock()
		return c.fail(ctx, "start", apperrors.UnsupportedPlatform(nil))
	}
	// A stopped recording is replaced by the new one. Its device is
	// already released.
	var replaced *session
	if st == Stopped {
		replaced = c.sess
		replaced.discard()
		c.sess = nil
	}
	c.pending = true
	c.abandon = false
	c.mu.Unlock()

	if replaced != nil {
		c.log.WithContext(ctx).Info("Discarding stopped recording", logger.Fields(logger.FieldSessionID, replaced.id))
		c.emit(Idle)
	}

	stream, err := c.open(ctx)

	c.mu.Lock()
	c.pending = false
	if err != nil {
		c.mu.Unlock()
		return c.fail(ctx, "start", err)
	}
	if c.abandon {
		c.abandon = false
		c.mu.Unlock()
		if cerr := stream.Close(); cerr != nil {
			c.log.Warn("Releasing microphone failed", logger.ErrorFields("start", cerr))
		}
		c.log.Info("Capture closed while microphone access was pending")
		return nil
	}
	sess := newSession(stream)
	c.sess = sess
	go sess.collect()
	c.mu.Unlock()

	c.log.WithContext(ctx).Info("Recording started", logger.Fields(
		logger.FieldSessionID, sess.id,
		"sample_rate", sess.format.SampleRate,
		"channels", sess.format.Channels,
		"encoding", string(sess.format.Encoding),
	))
	c.emit(Recording)
	return nil
}

func (c *VoiceCapture) open(ctx context.Context) (Stream, error) {
	if p, ok := c.device.(Prober); ok {
		if err := p.Probe(ctx); err != nil {
			if IsUnsupportedPlatform(err) {
				return nil, err
			}
			return nil, apperrors.UnsupportedPlatform(err)
		}
	}
	stream, err := c.device.Open(ctx)
	if err != nil {
		return nil, openError(err)
	}
	if stream == nil {
		return nil, apperrors.UnsupportedPlatform(errors.New("device returned no stream"))
	}
	return stream, nil
}

// Stop releases the microphone and assembles the artifact. The wait for the
// stream to drain happens outside the controller lock, so State, Cancel and
// Close stay responsive; a Cancel or Close during that wait wins.
func (c *VoiceCapture) Stop(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	if c.stopping {
		c.mu.Unlock()
		return c.fail(ctx, "stop", apperrors.InvalidState("stop", "stopping"))
	}
	if st := c.stateLocked(); st != Recording {
		c.mu.Unlock()
		return c.fail(ctx, "stop", apperrors.InvalidState("stop", st.String()))
	}
	c.stopping = true
	c.mu.Unlock()

	sess.release(ctx, c.log)

	c.mu.Lock()
	c.stopping = false
	if c.sess != sess {
		c.mu.Unlock()
		c.log.WithContext(ctx).Debug("Recording cancelled while stopping", logger.Fields(logger.FieldSessionID, sess.id))
		return nil
	}
	a, err := sess.stop()
	if err != nil {
		sess.discard()
		c.sess = nil
		c.mu.Unlock()
		c.emit(Idle)
		return c.fail(ctx, "stop", apperrors.Internal(err))
	}
	c.mu.Unlock()

	c.log.WithContext(ctx).Info("Recording stopped", logger.Fields(
		logger.FieldSessionID, sess.id,
		logger.FieldBytes, a.Size(),
		logger.FieldDuration, a.Duration.Milliseconds(),
	))
	c.emit(Stopped)
	return nil
}

// Playback plays the artifact for review. It is a no-op unless Stopped.
func (c *VoiceCapture) Playback(ctx context.Context) error {
	a := c.Artifact()
	if a == nil {
		return nil
	}
	if c.player == nil {
		return c.fail(ctx, "playback", apperrors.UnsupportedPlatform(errors.New("no audio output")))
	}
	start := time.Now()
	if err := c.player.Play(ctx, a); err != nil {
		return c.fail(ctx, "playback", err)
	}
	c.log.WithContext(ctx).Debug("Playback finished", logger.Elapsed("playback", start))
	return nil
}

// Cancel aborts a recording or drops a stopped one and returns to Idle. It
// is a no-op while Idle and while microphone access is pending.
func (c *VoiceCapture) Cancel(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	if c.pending || sess == nil {
		c.mu.Unlock()
		return nil
	}
	c.sess = nil
	prev, _, _ := sess.snapshot()
	sess.discard()
	// A Stop in progress is already releasing the stream.
	releasing := c.stopping
	c.mu.Unlock()

	if !releasing {
		sess.release(ctx, c.log)
	}

	c.log.WithContext(ctx).Info("Recording cancelled", logger.Fields(
		logger.FieldSessionID, sess.id,
		logger.FieldState, prev.String(),
	))
	c.emit(Idle)
	return nil
}

// Submit uploads the artifact with contextID. On success the session ends,
// the refresh callback fires once and the UI is closed. On failure the
// recording stays Stopped so the user can retry.
func (c *VoiceCapture) Submit(ctx context.Context, contextID string) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return c.fail(ctx, "submit", apperrors.InvalidState("submit", "submitting"))
	}
	sess := c.sess
	if c.stateLocked() != Stopped {
		c.mu.Unlock()
		return c.fail(ctx, "submit", apperrors.NoRecording())
	}
	if c.submitter == nil {
		c.mu.Unlock()
		return c.fail(ctx, "submit", apperrors.SubmissionFailed(0, "", errors.New("no submitter configured")))
	}
	_, a, _ := sess.snapshot()
	c.submitting = true
	c.mu.Unlock()

	start := time.Now()
	err := c.submitter.Submit(ctx, a, contextID)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.mu.Unlock()
		return c.fail(ctx, "submit", submitError(err))
	}
	current := c.sess == sess
	if current {
		c.sess = nil
		sess.discard()
	}
	c.mu.Unlock()

	c.log.WithContext(ctx).Info("Voice feedback submitted", logger.Fields(
		logger.FieldSessionID, sess.id,
		logger.FieldPredictionID, contextID,
		logger.FieldBytes, a.Size(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	if current {
		c.emit(Idle)
	}
	c.notify(ctx, notify.Info(MsgSubmitted))
	if c.refresh != nil {
		c.refresh(ctx)
	}
	if c.onClose != nil {
		c.onClose()
	}
	return nil
}

// Close is called when the capture UI closes. Any session is cancelled; a
// microphone granted after Close is released immediately.
func (c *VoiceCapture) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.abandon = true
	}
	c.mu.Unlock()
	return c.Cancel(ctx)
}

// fail logs err, shows it to the user and returns it as an AppError.
func (c *VoiceCapture) fail(ctx context.Context, op string, err error) error {
	appErr := apperrors.Wrap(err)
	fields := logger.ErrorFields(op, err)
	fields["code"] = string(appErr.Code)
	if status, body, ok := SubmissionStatus(appErr); ok && status != 0 {
		fields[logger.FieldStatus] = status
		if body != "" {
			fields["body"] = body
		}
	}
	c.log.WithContext(ctx).Error("Voice capture failed", fields)
	c.notify(ctx, notify.Error(appErr.Message))
	return appErr
}

// notify shows note to the user. A notifier failure is logged, never
// returned: the operation it reports has already happened.
func (c *VoiceCapture) notify(ctx context.Context, note notify.Notification) {
	if err := c.notifier.Notify(ctx, note); err != nil {
		c.log.WithContext(ctx).Debug("Notification not delivered", logger.Fields(
			logger.FieldError, err,
			"message", note.Message,
		))
	}
}

func (c *VoiceCapture) emit(s State) {
	if c.onState != nil {
		c.onState(s)
	}
}
