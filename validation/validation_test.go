package validation

import (
	"strings"
	"testing"

	apperrors "github.com/kbukum/voicefeedback/errors"
)

type upload struct {
	PredictionID string `json:"prediction_id" validate:"required,max=8,path_segment"`
	UserID       string `json:"user_id,omitempty"`
	Audio        []byte `json:"-" validate:"required,min=1,max=4"`
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T %v", err, err)
	}
	if appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("code = %s", appErr.Code)
	}
	out := map[string]string{}
	for _, fe := range appErr.Details["fields"].([]FieldError) {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name  string
		in    upload
		field string
		msg   string
	}{
		{"missing prediction", upload{Audio: []byte{1}}, "prediction_id", "is required"},
		{"long prediction", upload{PredictionID: "123456789", Audio: []byte{1}}, "prediction_id", "must be at most 8 characters"},
		{"unsafe prediction", upload{PredictionID: "/ /", Audio: []byte{1}}, "prediction_id", "must contain letters"},
		{"nil audio", upload{PredictionID: "42"}, "audio", "is required"},
		{"empty audio", upload{PredictionID: "42", Audio: []byte{}}, "audio", "must not be empty"},
		{"large audio", upload{PredictionID: "42", Audio: make([]byte, 5)}, "audio", "must be at most 4 bytes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := fields(t, Validate(tc.in))
			if !strings.HasPrefix(got[tc.field], tc.msg) {
				t.Errorf("fields = %v, want %s: %s", got, tc.field, tc.msg)
			}
		})
	}
}

func TestValidateStructValid(t *testing.T) {
	if err := Validate(upload{PredictionID: "pred-42", Audio: []byte{1, 2}}); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidator(t *testing.T) {
	if appErr := New().Required("username", "analyst").Check(true, "audio", "is empty").Validate(); appErr != nil {
		t.Fatalf("expected no error, got %v", appErr)
	}

	appErr := New().
		Required("username", "  ").
		Check(false, "audio", "must be 10 bytes or less").
		Check(false, "prediction_id", "is invalid").
		Validate()
	got := fields(t, appErr)
	if len(got) != 3 || got["audio"] != "must be 10 bytes or less" || got["username"] != "is required" {
		t.Errorf("fields = %v", got)
	}
	if !strings.Contains(appErr.Message, "username: is required; audio:") {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{"Audio": "audio", "MaxAudioSize": "max_audio_size", "userId": "user_id"} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
