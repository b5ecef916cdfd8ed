// Package errors defines AppError, the error type shared by the capture
// controller, the feedback client and feedbackd.
//
// Each ErrorCode fixes its HTTP status and whether a retry may help, so
// code alone decides how an error travels over the wire:
//
//	{"error":{"code":"MISSING_FIELD","message":"Missing required data","retryable":false}}
//
// ParseResponse turns such a body back into an AppError on the client side.
package errors
