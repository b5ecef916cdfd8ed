package capture

import (
	apperrors "github.com/kbukum/voicefeedback/errors"
)

// IsUnsupportedPlatform reports whether err means the host has no capture
// capability.
func IsUnsupportedPlatform(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeUnsupportedPlatform)
}

// IsPermissionDenied reports whether err means microphone access was refused.
func IsPermissionDenied(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodePermissionDenied)
}

// IsSubmissionFailed reports whether err means the upload was not accepted.
func IsSubmissionFailed(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeSubmissionFailed)
}

// IsNoRecording reports whether err means there was nothing to submit.
func IsNoRecording(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeNoRecording)
}

// IsInvalidState reports whether err means the operation was not allowed in
// the current state.
func IsInvalidState(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeInvalidState)
}

// SubmissionStatus returns the HTTP status and response body carried by a
// SubmissionFailed error. ok is false for any other error.
func SubmissionStatus(err error) (status int, body string, ok bool) {
	appErr, isApp := apperrors.AsAppError(err)
	if !isApp || appErr.Code != apperrors.ErrCodeSubmissionFailed {
		return 0, "", false
	}
	status, _ = appErr.Details["status"].(int)
	body, _ = appErr.Details["body"].(string)
	return status, body, true
}

// openError maps a Device.Open failure onto the capture taxonomy. Errors
// already classified by the device are kept; anything else is a refusal.
func openError(err error) error {
	if IsUnsupportedPlatform(err) || IsPermissionDenied(err) {
		return err
	}
	return apperrors.PermissionDenied(err)
}

// submitError maps a Submitter failure onto SubmissionFailed.
func submitError(err error) error {
	if IsSubmissionFailed(err) {
		return err
	}
	return apperrors.SubmissionFailed(0, "", err)
}
