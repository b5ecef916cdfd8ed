package errors

import (
	"encoding/json"
)

// ErrorResponse is the JSON envelope of every non-2xx answer from feedbackd:
//
//	{"error":{"code":"MISSING_FIELD","message":"Missing required data","retryable":false}}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ToResponse renders e for the wire. The cause stays server-side.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
	}}
}

// ParseResponse rebuilds the AppError a server sent with status. ok is
// false when body is not an ErrorResponse.
func ParseResponse(status int, body []byte) (appErr *AppError, ok bool) {
	var env ErrorResponse
	if len(body) == 0 || json.Unmarshal(body, &env) != nil || env.Error.Code == "" {
		return nil, false
	}
	return &AppError{
		Code:       env.Error.Code,
		Message:    env.Error.Message,
		Retryable:  env.Error.Retryable,
		HTTPStatus: status,
		Details:    env.Error.Details,
	}, true
}
