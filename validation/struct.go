package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/voicefeedback/errors"
	"github.com/kbukum/voicefeedback/util"
)

// TagPathSegment accepts strings that survive util.SafePathSegment, i.e.
// values usable as one storage key segment.
const TagPathSegment = "path_segment"

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func structValidator() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(fieldName)
		_ = engine.RegisterValidation(TagPathSegment, func(fl validator.FieldLevel) bool {
			return util.SafePathSegment(fl.Field().String()) != ""
		})
	})
	return engine
}

// fieldName reports fields by their wire name: the json tag, or the
// snake_cased Go name for fields that never travel as JSON (multipart
// parts such as audio).
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return toSnakeCase(f.Name)
	}
	return name
}

// Validate checks s against its `validate` tags and returns an INVALID_INPUT
// AppError listing every failing field.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}
	v := New()
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), describe(fe))
	}
	return v.Validate()
}

func describe(fe validator.FieldError) string {
	unit := "characters"
	if k := fe.Kind(); k == reflect.Slice || k == reflect.Array || k == reflect.Map {
		unit = "items"
		if fe.Type().Elem().Kind() == reflect.Uint8 {
			unit = "bytes"
		}
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" && unit != "characters" {
			return "must not be empty"
		}
		return "must be at least " + fe.Param() + " " + unit
	case "max":
		return "must be at most " + fe.Param() + " " + unit
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case TagPathSegment:
		return "must contain letters, digits, '.', '-' or '_'"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
