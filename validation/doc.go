// Package validation checks request payloads before they reach the feedback
// service.
//
// Struct tags cover payloads whose limits are static:
//
//	type Upload struct {
//	    PredictionID string `json:"prediction_id" validate:"required,max=128,path_segment"`
//	    Audio        []byte `json:"-" validate:"required,min=1"`
//	}
//	err := validation.Validate(up)
//
// The fluent Validator covers rules that depend on configuration:
//
//	appErr := validation.New().
//	    Required("username", req.Username).
//	    Check(cfg.Known(req.Username), "username", "is unknown").
//	    Validate()
//
// Both report failures as *errors.AppError with per-field details.
package validation
