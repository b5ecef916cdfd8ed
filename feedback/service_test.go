package feedback

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/voicefeedback/capture"
	"github.com/kbukum/voicefeedback/capture/capturetest"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/storage"
	"github.com/kbukum/voicefeedback/storage/memory"
	"github.com/kbukum/voicefeedback/transcription"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
	last  transcription.Request
}

func (f *fakeTranscriber) Name() string                     { return "fake" }
func (f *fakeTranscriber) IsAvailable(context.Context) bool { return true }

func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.Request) (*transcription.Response, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &transcription.Response{Text: f.text}, nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "feedback-test", io.Discard)
}

// wavOf returns a mono 16 kHz WAV of d.
func wavOf(t *testing.T, d time.Duration) []byte {
	t.Helper()
	samples := int(d * time.Duration(capture.DefaultFormat.SampleRate) / time.Second)
	data, err := capture.EncodeWAV(capturetest.Tone(samples, 0), capture.DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newTestService(t *testing.T, cfg Config, opts ...Option) (*Service, *memory.Storage) {
	t.Helper()
	store := memory.New()
	svc, err := NewService(cfg, store, append([]Option{WithLogger(testLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestServiceSubmitStoresAudio(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Config{})
	svc.newID = func() string { return "rec-1" }
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	audio := wavOf(t, 500*time.Millisecond)
	rec, err := svc.Submit(ctx, Upload{PredictionID: "42", UserID: "analyst", MediaType: "audio/wav", Audio: audio})
	if err != nil {
		t.Fatalf("Submit() = %v", err)
	}

	if rec.AudioPath != "voice/42/rec-1.wav" {
		t.Errorf("AudioPath = %q", rec.AudioPath)
	}
	if rec.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %v", rec.Duration)
	}
	if rec.Size != int64(len(audio)) || rec.UserID != "analyst" || !rec.CreatedAt.Equal(now) {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Transcription != "" {
		t.Errorf("transcription with transcription disabled: %q", rec.Transcription)
	}

	stored, err := storage.GetBytes(ctx, store, rec.AudioPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(stored) != string(audio) {
		t.Error("stored audio differs from upload")
	}

	got, err := svc.List(ctx, "42")
	if err != nil || len(got) != 1 || got[0].ID != "rec-1" {
		t.Errorf("List = %+v, %v", got, err)
	}
}

func TestServiceTranscription(t *testing.T) {
	tests := []struct {
		name      string
		audio     time.Duration
		opaque    bool
		err       error
		wantText  string
		wantCalls int
	}{
		{"short recording", time.Second, false, nil, "looks wrong", 1},
		{"too long", 3 * time.Second, false, nil, "", 0},
		{"unknown length", 0, true, nil, "", 0},
		{"backend failure", time.Second, false, errors.New("sidecar down"), "", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := &fakeTranscriber{text: "looks wrong", err: tc.err}
			svc, _ := newTestService(t, Config{
				Transcribe:               true,
				MaxTranscriptionDuration: 2 * time.Second,
				Language:                 "en",
			}, WithTranscriber(tr))

			audio := []byte("OggS-not-a-wav")
			if !tc.opaque {
				audio = wavOf(t, tc.audio)
			}
			rec, err := svc.Submit(context.Background(), Upload{PredictionID: "9", Audio: audio})
			if err != nil {
				t.Fatalf("Submit() = %v", err)
			}
			if rec.Transcription != tc.wantText {
				t.Errorf("Transcription = %q, want %q", rec.Transcription, tc.wantText)
			}
			if tr.calls != tc.wantCalls {
				t.Errorf("transcriber called %d times, want %d", tr.calls, tc.wantCalls)
			}
			if tr.calls > 0 && (tr.last.Language != "en" || tr.last.FileName != capture.FileName) {
				t.Errorf("unexpected request %+v", tr.last)
			}
		})
	}
}

func TestServiceSubmitValidation(t *testing.T) {
	svc, _ := newTestService(t, Config{MaxAudioSize: "1KB"})
	tests := []struct {
		name string
		up   Upload
	}{
		{"missing prediction", Upload{Audio: []byte("x")}},
		{"missing audio", Upload{PredictionID: "42"}},
		{"prediction too long", Upload{PredictionID: strings.Repeat("9", 129), Audio: []byte("x")}},
		{"unsafe prediction", Upload{PredictionID: "..", Audio: []byte("x")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.up)
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("Submit() = %v, want INVALID_INPUT", err)
			}
		})
	}
	all, _ := svc.List(context.Background(), "")
	if len(all) != 0 {
		t.Errorf("rejected uploads were stored: %d", len(all))
	}
}

func TestServiceSubmitAudioTooLarge(t *testing.T) {
	svc, _ := newTestService(t, Config{MaxAudioSize: "1KB"})
	_, err := svc.Submit(context.Background(), Upload{PredictionID: "42", Audio: make([]byte, 2048)})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodePayloadTooLarge || appErr.HTTPStatus != http.StatusRequestEntityTooLarge {
		t.Fatalf("Submit() = %v, want PAYLOAD_TOO_LARGE", err)
	}
	if all, _ := svc.List(context.Background(), ""); len(all) != 0 {
		t.Errorf("oversized upload was stored")
	}
}

func TestServiceAudio(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Config{})
	audio := wavOf(t, 100*time.Millisecond)
	rec, err := svc.Submit(ctx, Upload{PredictionID: "42", Audio: audio})
	if err != nil {
		t.Fatal(err)
	}

	got, rc, err := svc.Audio(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if got.ID != rec.ID || len(data) != len(audio) {
		t.Errorf("Audio returned %s with %d bytes", got.ID, len(data))
	}

	_ = store.Delete(ctx, rec.AudioPath)
	if _, _, err := svc.Audio(ctx, rec.ID); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Audio after delete = %v", err)
	}
	if _, _, err := svc.Audio(ctx, "nope"); !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Audio(unknown) = %v", err)
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{Transcribe: true}
	cfg.ApplyDefaults()
	if cfg.MaxTranscriptionDuration != 30*time.Second || cfg.MaxAudioSize != "25MB" || cfg.KeyPrefix != "voice" || cfg.Transcriber != "whisper" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	for _, bad := range []Config{
		{MaxAudioSize: "lots", KeyPrefix: "voice"},
		{MaxAudioSize: "1MB", KeyPrefix: "voice/../x"},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", bad)
		}
	}
}
