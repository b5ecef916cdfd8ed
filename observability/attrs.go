package observability

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Span names.
const (
	SpanVoiceSubmit = "feedback.voice.submit"
	SpanVoiceList   = "feedback.voice.list"
	SpanTranscribe  = "transcription.transcribe"
	SpanStorePut    = "storage.put"
)

// Attribute keys.
const (
	AttrPredictionID = "feedback.prediction_id"
	AttrUserID       = "user.id"
	AttrAudioBytes   = "audio.bytes"
	AttrAudioSeconds = "audio.duration_s"
	AttrStatus       = "status"
	AttrDurationMs   = "duration_ms"
)

// kv converts a loosely typed value into an attribute. Durations become
// milliseconds; unknown types are formatted with %v.
func kv(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case time.Duration:
		return attribute.Int64(key, v.Milliseconds())
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}

// serviceResource describes this process to the collector. Both providers
// share it so traces and metrics join on the same service. The attributes
// are schemaless so the merge adopts the SDK default's schema URL.
func serviceResource(service, version, environment string) (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(service),
		semconv.ServiceVersion(version),
		semconv.DeploymentEnvironment(environment),
	))
}
