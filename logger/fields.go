package logger

import (
	"time"
)

// Field keys shared by the capture, feedback and server packages.
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldUserID       = "user_id"
	FieldSessionID    = "session_id"
	FieldPredictionID = "prediction_id"
	FieldState        = "state"
	FieldOperation    = "operation"
	FieldStatus       = "status"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldBytes        = "bytes"
)

// Fields builds a field map from alternating keys and values. A trailing key
// without a value is dropped. Errors are stored as their message and
// durations in milliseconds.
//
//	log.Info("Submitted", logger.Fields(logger.FieldPredictionID, id, logger.FieldBytes, n))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			continue
		}
		switch v := kvs[i+1].(type) {
		case error:
			if v != nil {
				m[key] = v.Error()
			}
		case time.Duration:
			m[key] = v.Milliseconds()
		default:
			m[key] = v
		}
	}
	return m
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return Fields(FieldOperation, op, FieldError, err)
}

// Elapsed describes an operation that began at start.
func Elapsed(op string, start time.Time) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, time.Since(start))
}
