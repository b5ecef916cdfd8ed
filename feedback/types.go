package feedback

import (
	"time"
)

// Routes and form fields of the upload contract.
const (
	PathVoice = "/api/feedback/voice"
	PathLogin = "/api/auth/login"

	FieldAudio        = "audio"
	FieldPredictionID = "prediction_id"

	// StatusReceived is the status string of a successful upload.
	StatusReceived = "voice feedback received"
)

// Record is one stored voice feedback.
type Record struct {
	ID            string        `json:"id"`
	PredictionID  string        `json:"prediction_id"`
	UserID        string        `json:"user_id,omitempty"`
	AudioPath     string        `json:"audio_path"`
	MediaType     string        `json:"media_type,omitempty"`
	Size          int64         `json:"size"`
	Transcription string        `json:"transcription"`
	Duration      time.Duration `json:"duration"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Upload is an accepted multipart submission.
type Upload struct {
	PredictionID string `json:"prediction_id" validate:"required,max=128,path_segment"`
	UserID       string `json:"user_id"`
	FileName     string `json:"file_name"`
	MediaType    string `json:"media_type"`
	Audio        []byte `json:"-" validate:"required,min=1"`
}

// SubmitResponse is the body of a successful upload.
type SubmitResponse struct {
	Status        string `json:"status"`
	ID            string `json:"id,omitempty"`
	Transcription string `json:"transcription"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// listResponse mirrors server.DataResponse for the client.
type listResponse struct {
	Data []Record `json:"data"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta,omitempty"`
}
