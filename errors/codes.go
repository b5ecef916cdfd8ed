package errors

import "net/http"

// ErrorCode is the machine-readable code carried in every error response.
type ErrorCode string

const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeConnectionFailed   ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField       ErrorCode = "MISSING_FIELD"
	ErrCodePayloadTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService    ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Client-side recording and submission failures.
	ErrCodeLoginRequired       ErrorCode = "LOGIN_REQUIRED"
	ErrCodeUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrCodePermissionDenied    ErrorCode = "PERMISSION_DENIED"
	ErrCodeSubmissionFailed    ErrorCode = "SUBMISSION_FAILED"
	ErrCodeInvalidState        ErrorCode = "INVALID_STATE"
	ErrCodeNoRecording         ErrorCode = "NO_RECORDING"
)

type codeSpec struct {
	status    int
	retryable bool
}

// specs maps each code to its HTTP status and whether the caller may retry.
var specs = map[ErrorCode]codeSpec{
	ErrCodeServiceUnavailable:  {http.StatusServiceUnavailable, true},
	ErrCodeConnectionFailed:    {http.StatusServiceUnavailable, true},
	ErrCodeTimeout:             {http.StatusGatewayTimeout, true},
	ErrCodeNotFound:            {http.StatusNotFound, false},
	ErrCodeConflict:            {http.StatusConflict, false},
	ErrCodeInvalidInput:        {http.StatusBadRequest, false},
	ErrCodeMissingField:        {http.StatusBadRequest, false},
	ErrCodePayloadTooLarge:     {http.StatusRequestEntityTooLarge, false},
	ErrCodeUnauthorized:        {http.StatusUnauthorized, false},
	ErrCodeForbidden:           {http.StatusForbidden, false},
	ErrCodeTokenExpired:        {http.StatusUnauthorized, false},
	ErrCodeInvalidToken:        {http.StatusUnauthorized, false},
	ErrCodeInternal:            {http.StatusInternalServerError, false},
	ErrCodeExternalService:     {http.StatusBadGateway, true},
	ErrCodeLoginRequired:       {http.StatusUnauthorized, false},
	ErrCodeUnsupportedPlatform: {http.StatusNotImplemented, false},
	ErrCodePermissionDenied:    {http.StatusForbidden, false},
	ErrCodeSubmissionFailed:    {http.StatusBadGateway, true},
	ErrCodeInvalidState:        {http.StatusConflict, false},
	ErrCodeNoRecording:         {http.StatusBadRequest, false},
}

// Status returns the HTTP status for code. Unknown codes map to 500.
func (c ErrorCode) Status() int {
	if s, ok := specs[c]; ok {
		return s.status
	}
	return http.StatusInternalServerError
}

// Retryable reports whether an operation failing with code may succeed on
// a later attempt.
func (c ErrorCode) Retryable() bool {
	return specs[c].retryable
}
