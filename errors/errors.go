package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type shared by feedbackd handlers and the
// voicefeedback client. Its JSON form is the body of every error response.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`

	HTTPStatus int   `json:"-"`
	Cause      error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail entry and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges details into e and returns it.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// New builds an AppError whose status and retryability come from code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Retryable:  code.Retryable(),
		HTTPStatus: code.Status(),
	}
}

// Wrap returns the first AppError in err's chain, or an internal error
// wrapping err.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func ServiceUnavailable(service string) *AppError {
	return New(ErrCodeServiceUnavailable, fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service)).
		WithDetail("service", service)
}

func ConnectionFailed(service string) *AppError {
	return New(ErrCodeConnectionFailed, fmt.Sprintf("Unable to connect to %s. Please verify the service is running.", service)).
		WithDetail("service", service)
}

func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "The request took too long. Please try again.").
		WithDetail("operation", operation)
}

// NotFound omits the id detail when id is empty.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource)).
		WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

func Conflict(reason string) *AppError {
	return New(ErrCodeConflict, reason)
}

func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries a multi-field validation message verbatim.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

// PayloadTooLarge reports a request body over limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return New(ErrCodePayloadTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit)).
		WithDetail("limit", limit)
}

func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason)
}

func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return New(ErrCodeForbidden, reason)
}

func TokenExpired() *AppError {
	return New(ErrCodeTokenExpired, "Your session has expired. Please log in again.")
}

func InvalidToken() *AppError {
	return New(ErrCodeInvalidToken, "Invalid authentication token. Please log in again.")
}

// LoginRequired means the client has no stored credential.
func LoginRequired() *AppError {
	return New(ErrCodeLoginRequired, "Please log in first.")
}

// Internal hides cause from the response body; it is only logged.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.").WithCause(cause)
}

func ExternalServiceError(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("The %s service encountered an error. Please try again.", service)).
		WithDetail("service", service).WithCause(cause)
}

// UnsupportedPlatform means the host cannot capture or play audio.
func UnsupportedPlatform(cause error) *AppError {
	return New(ErrCodeUnsupportedPlatform, "Voice recording not supported on this platform").WithCause(cause)
}

// PermissionDenied means the user or OS refused microphone access.
func PermissionDenied(cause error) *AppError {
	return New(ErrCodePermissionDenied, "Microphone access denied").WithCause(cause)
}

// SubmissionFailed means the feedback endpoint did not accept an upload.
// A zero status means no response arrived.
func SubmissionFailed(status int, body string, cause error) *AppError {
	e := New(ErrCodeSubmissionFailed, "Failed to submit voice feedback").WithCause(cause)
	if status != 0 {
		e.WithDetail("status", status)
	}
	if body != "" {
		e.WithDetail("body", body)
	}
	return e
}

// InvalidState means operation is not allowed while the recorder is in state.
func InvalidState(operation, state string) *AppError {
	return New(ErrCodeInvalidState, fmt.Sprintf("Cannot %s while %s", operation, state)).
		WithDetails(map[string]any{"operation": operation, "state": state})
}

// NoRecording means submit was called without a finished recording.
func NoRecording() *AppError {
	return New(ErrCodeNoRecording, "Please record feedback first")
}
