// Package whisper is a transcription.Provider backed by a faster-whisper
// HTTP sidecar exposing POST /transcribe and GET /health.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/httpclient"
	"github.com/kbukum/voicefeedback/provider"
	"github.com/kbukum/voicefeedback/resilience"
	"github.com/kbukum/voicefeedback/transcription"
)

const (
	// ProviderName is the registered name for the Whisper provider.
	ProviderName = "whisper"

	defaultURL         = "http://localhost:8387"
	defaultModel       = "base"
	defaultTimeout     = 120 * time.Second
	defaultMaxAttempts = 2
)

// Config holds the sidecar settings.
type Config struct {
	URL      string        `yaml:"url" mapstructure:"url"`
	Model    string        `yaml:"model" mapstructure:"model"`
	Language string        `yaml:"language" mapstructure:"language"`
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxAttempts counts the first call. 1 disables retries.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
}

// Provider implements transcription.Provider.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a provider for the sidecar at cfg.URL.
func NewProvider(cfg Config, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	retry.InitialBackoff = 250 * time.Millisecond
	retry.RetryIf = httpclient.IsRetryable

	hc := httpclient.Config{
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Retry:   &retry,
	}
	if cfg.APIKey != "" {
		hc.Auth = httpclient.BearerAuth(cfg.APIKey)
	}

	client, err := httpclient.New(hc, opts...)
	if err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory decodes a config section into Config and builds a Provider.
// Durations may be given as strings such as "90s".
func Factory() provider.Factory[transcription.Provider] {
	return func(raw map[string]any) (transcription.Provider, error) {
		var cfg Config
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			WeaklyTypedInput: true,
			Result:           &cfg,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(raw); err != nil {
			return nil, fmt.Errorf("whisper: decode config: %w", err)
		}
		return NewProvider(cfg)
	}
}

// Register adds the whisper factory to reg.
func Register(reg *provider.Registry[transcription.Provider]) {
	reg.RegisterFactory(ProviderName, Factory())
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the sidecar answers its health endpoint.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.StatusCode == http.StatusOK
}

// Transcribe uploads the audio and decodes the sidecar's JSON answer.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	if len(req.Audio) == 0 {
		return nil, apperrors.MissingField("audio")
	}

	fields := map[string]string{"model": p.cfg.Model}
	if req.Model != "" {
		fields["model"] = req.Model
	}
	if lang := firstNonEmpty(req.Language, p.cfg.Language); lang != "" {
		fields["language"] = lang
	}

	fileName := firstNonEmpty(req.FileName, "audio.wav")
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "audio",
				FileName:    fileName,
				ContentType: firstNonEmpty(req.MediaType, "audio/wav"),
				Data:        req.Audio,
			}},
		},
	})
	if err != nil {
		if status, body := httpclient.StatusAndBody(err); status > 0 {
			return nil, apperrors.ExternalServiceError(ProviderName, fmt.Errorf("status %d: %s", status, body))
		}
		return nil, apperrors.ExternalServiceError(ProviderName, err)
	}

	var result whisperResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, apperrors.ExternalServiceError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	return result.toResponse(), nil
}

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (r *whisperResponse) toResponse() *transcription.Response {
	out := &transcription.Response{
		Text:     r.Text,
		Language: r.Language,
		Segments: make([]transcription.Segment, len(r.Segments)),
	}
	for i, seg := range r.Segments {
		out.Segments[i] = transcription.Segment{Start: seg.Start, End: seg.End, Text: seg.Text}
	}
	if n := len(r.Segments); n > 0 {
		out.Duration = time.Duration(r.Segments[n-1].End * float64(time.Second))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
