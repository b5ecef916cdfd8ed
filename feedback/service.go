package feedback

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/voicefeedback/capture"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/observability"
	"github.com/kbukum/voicefeedback/storage"
	"github.com/kbukum/voicefeedback/transcription"
	"github.com/kbukum/voicefeedback/util"
	"github.com/kbukum/voicefeedback/validation"
)

// Service stores uploads and serves the listing.
type Service struct {
	cfg         Config
	maxAudio    int64
	store       storage.Storage
	repo        Repository
	transcriber transcription.Provider
	metrics     *observability.Metrics
	log         *logger.Logger
	now         func() time.Time
	newID       func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRepository replaces the in-memory repository.
func WithRepository(r Repository) Option {
	return func(s *Service) { s.repo = r }
}

// WithTranscriber sets the speech-to-text backend. It is only called when
// Config.Transcribe is set.
func WithTranscriber(p transcription.Provider) Option {
	return func(s *Service) { s.transcriber = p }
}

// WithMetrics records operation and upload metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.WithComponent("feedback")
		}
	}
}

// NewService creates a Service that writes audio to store.
func NewService(cfg Config, store storage.Storage, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxAudio, _ := cfg.maxAudioBytes()
	s := &Service{
		cfg:      cfg,
		maxAudio: maxAudio,
		store:    store,
		repo:     NewMemoryRepository(),
		log:      logger.WithComponent("feedback"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxAudioSize is the configured upload limit in bytes.
func (s *Service) MaxAudioSize() int64 { return s.maxAudio }

// Submit stores the audio under <prefix>/<prediction_id>/<uuid>.wav,
// transcribes it when enabled and short enough, and saves the record.
// A transcription failure leaves the text empty.
func (s *Service) Submit(ctx context.Context, up Upload) (rec *Record, err error) {
	op := observability.StartOperation(ctx, s.metrics, observability.SpanVoiceSubmit,
		attribute.String(observability.AttrPredictionID, up.PredictionID),
		attribute.String(observability.AttrUserID, up.UserID),
		attribute.Int(observability.AttrAudioBytes, len(up.Audio)),
	)
	defer func() { op.End(err) }()
	ctx = op.Context()
	log := s.log.WithContext(ctx)

	if err := s.validate(up); err != nil {
		return nil, err
	}

	id := s.newID()
	key := path.Join(s.cfg.KeyPrefix, util.SafePathSegment(up.PredictionID), id+".wav")
	if err := s.put(ctx, key, up.Audio); err != nil {
		log.Error("Storing voice feedback failed", logger.ErrorFields("store", err))
		s.metrics.RecordError(ctx, string(apperrors.ErrCodeInternal), "storage")
		return nil, apperrors.Internal(err)
	}

	duration, derr := capture.WAVDuration(up.Audio)
	if derr != nil {
		log.Debug("Audio is not PCM WAV, duration unknown", logger.Fields(
			logger.FieldPredictionID, up.PredictionID,
			logger.FieldError, derr.Error(),
		))
	}

	if duration > 0 {
		observability.SetSpanAttribute(ctx, observability.AttrAudioSeconds, duration.Seconds())
	}

	rec = &Record{
		ID:            id,
		PredictionID:  up.PredictionID,
		UserID:        up.UserID,
		AudioPath:     key,
		MediaType:     up.MediaType,
		Size:          int64(len(up.Audio)),
		Transcription: s.transcribe(ctx, up, duration),
		Duration:      duration,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Save(ctx, *rec); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, apperrors.Wrap(err)
	}

	s.metrics.RecordUpload(ctx, rec.Size, duration)
	log.Info("Voice feedback received", logger.Fields(
		logger.FieldPredictionID, rec.PredictionID,
		logger.FieldUserID, rec.UserID,
		logger.FieldBytes, rec.Size,
		logger.FieldDuration, duration.Milliseconds(),
		"transcribed", rec.Transcription != "",
	))
	return rec, nil
}

func (s *Service) put(ctx context.Context, key string, data []byte) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanStorePut)
	defer span.End()
	if err := storage.PutBytes(ctx, s.store, key, data); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	return nil
}

// validate checks the upload fields. Audio over the configured limit is
// answered like a body over the server limit: 413, not a validation error.
func (s *Service) validate(up Upload) error {
	if s.maxAudio > 0 && int64(len(up.Audio)) > s.maxAudio {
		return apperrors.PayloadTooLarge(s.maxAudio)
	}
	return validation.Validate(up)
}

// transcribe returns "" when transcription is off, the recording is too
// long or of unknown length, or the backend fails.
func (s *Service) transcribe(ctx context.Context, up Upload, duration time.Duration) string {
	if !s.cfg.Transcribe || s.transcriber == nil {
		return ""
	}
	if duration <= 0 || duration > s.cfg.MaxTranscriptionDuration {
		s.log.WithContext(ctx).Debug("Skipping transcription", logger.Fields(
			logger.FieldPredictionID, up.PredictionID,
			logger.FieldDuration, duration.Milliseconds(),
		))
		return ""
	}

	op := observability.StartOperation(ctx, s.metrics, observability.SpanTranscribe,
		attribute.String(observability.AttrPredictionID, up.PredictionID))
	resp, err := s.transcriber.Transcribe(op.Context(), transcription.Request{
		Audio:     up.Audio,
		FileName:  capture.FileName,
		MediaType: up.MediaType,
		Language:  s.cfg.Language,
	})
	op.End(err)
	if err != nil {
		s.log.WithContext(ctx).Warn("Transcription failed", logger.Fields(
			logger.FieldPredictionID, up.PredictionID, logger.FieldError, err))
		s.metrics.RecordError(ctx, string(apperrors.ErrCodeExternalService), "transcription")
		return ""
	}
	return resp.Text
}

// List returns the records for predictionID, newest first. An empty
// predictionID lists everything.
func (s *Service) List(ctx context.Context, predictionID string) (records []Record, err error) {
	op := observability.StartOperation(ctx, s.metrics, observability.SpanVoiceList,
		attribute.String(observability.AttrPredictionID, predictionID))
	defer func() { op.End(err) }()
	return s.repo.List(op.Context(), predictionID)
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

// Audio opens the stored recording of a record. The caller closes it.
func (s *Service) Audio(ctx context.Context, id string) (*Record, io.ReadCloser, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Download(ctx, rec.AudioPath)
	if err != nil {
		return nil, nil, apperrors.NotFound("voice feedback audio", id).WithCause(err)
	}
	return rec, rc, nil
}
