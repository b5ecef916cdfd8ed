package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kbukum/voicefeedback/capture"
	"github.com/kbukum/voicefeedback/credential"
	apperrors "github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/httpclient"
	"github.com/kbukum/voicefeedback/logger"
)

// Client talks to the feedback service. It implements capture.Submitter.
type Client struct {
	http   *httpclient.Client
	tokens credential.Source
	log    *logger.Logger
}

var _ capture.Submitter = (*Client)(nil)

// NewClient builds a Client for the service at cfg.BaseURL. The token is
// read from tokens on every call; a nil source sends no Authorization
// header. Uploads are sent once, so any Retry in cfg is ignored.
func NewClient(cfg httpclient.Config, tokens credential.Source, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("feedback: base_url is required")
	}
	cfg.Retry = nil
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	hc, err := httpclient.New(cfg, httpclient.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, tokens: tokens, log: log.WithComponent("feedback-client")}, nil
}

// Submit posts the artifact with contextID as prediction_id. A non-2xx
// answer becomes a SubmissionFailed error carrying the status and body.
func (c *Client) Submit(ctx context.Context, a *capture.Artifact, contextID string) error {
	if a == nil || a.Size() == 0 {
		return apperrors.NoRecording()
	}
	token, err := c.token(ctx)
	if err != nil {
		return apperrors.SubmissionFailed(0, "", err)
	}

	fileName := a.FileName
	if fileName == "" {
		fileName = capture.FileName
	}
	body := &httpclient.MultipartBody{
		Fields: map[string]string{FieldPredictionID: contextID},
		Files: []httpclient.FileField{{
			FieldName:   FieldAudio,
			FileName:    fileName,
			ContentType: a.MediaType,
			Data:        a.Data,
		}},
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   PathVoice,
		Body:   body,
		Auth:   bearer(token),
	})
	if err != nil {
		status, respBody := httpclient.StatusAndBody(err)
		c.log.WithContext(ctx).Warn("Voice upload rejected", logger.Fields(
			logger.FieldPredictionID, contextID,
			logger.FieldStatus, status,
			logger.FieldError, err.Error(),
		))
		return apperrors.SubmissionFailed(status, string(respBody), err)
	}

	c.log.WithContext(ctx).Info("Voice upload accepted", logger.Fields(
		logger.FieldPredictionID, contextID,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldBytes, a.Size(),
	))
	return nil
}

// Recent lists the stored feedback for predictionID, newest first.
func (c *Client) Recent(ctx context.Context, predictionID string) ([]Record, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	req := httpclient.Request{
		Method: http.MethodGet,
		Path:   PathVoice,
		Auth:   bearer(token),
	}
	if predictionID != "" {
		req.Query = map[string]string{FieldPredictionID: predictionID}
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, responseError(err)
	}
	var out listResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, apperrors.ExternalServiceError("feedback", fmt.Errorf("decode listing: %w", err))
	}
	return out.Data, nil
}

// Login exchanges a username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   LoginRequest{Username: username, Password: password},
		Auth:   httpclient.NoAuth(),
	})
	if err != nil {
		return nil, responseError(err)
	}
	var out LoginResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, apperrors.ExternalServiceError("feedback", fmt.Errorf("decode login response: %w", err))
	}
	if out.Token == "" {
		return nil, apperrors.ExternalServiceError("feedback", fmt.Errorf("login response carries no token"))
	}
	return &out, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}

func bearer(token string) *httpclient.AuthConfig {
	if token == "" {
		return httpclient.NoAuth()
	}
	return httpclient.BearerAuth(token)
}

// responseError prefers the service's own error envelope and falls back to
// the transport classification.
func responseError(err error) error {
	status, body := httpclient.StatusAndBody(err)
	if appErr, ok := apperrors.ParseResponse(status, body); ok {
		return appErr.WithCause(err)
	}
	var he *httpclient.Error
	if errors.As(err, &he) {
		return he.AppError()
	}
	return apperrors.Wrap(err)
}
