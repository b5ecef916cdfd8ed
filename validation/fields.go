package validation

import (
	"strings"

	"github.com/kbukum/voicefeedback/errors"
)

// FieldError is one entry of the "fields" detail of a validation AppError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors for checks that struct tags cannot
// express, such as rules that depend on configuration.
type Validator struct {
	errs []FieldError
}

// New returns an empty Validator.
func New() *Validator { return &Validator{} }

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Required fails when value is blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Check fails with message unless ok.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Errors returns the recorded failures.
func (v *Validator) Errors() []FieldError { return v.errs }

// Validate returns nil, or an INVALID_INPUT AppError whose message joins
// every failure and whose "fields" detail lists them.
func (v *Validator) Validate() *errors.AppError {
	if len(v.errs) == 0 {
		return nil
	}
	msgs := make([]string, len(v.errs))
	for i, e := range v.errs {
		msgs[i] = e.Field + ": " + e.Message
	}
	appErr := errors.Validation(strings.Join(msgs, "; "))
	appErr.Details = map[string]any{"fields": v.errs}
	return appErr
}
