package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestConfig_DefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.MetricInterval != 15*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	cfg.SampleRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample_rate > 1")
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{}, "feedbackd", "dev", "test")
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestInit_Enabled(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	shutdown, err := Init(context.Background(), Config{Enabled: true, Endpoint: "127.0.0.1:1", Insecure: true}, "feedbackd", "dev", "test")
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown func")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	// The collector is unreachable, so only the call itself matters.
	_ = shutdown(ctx)
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); got != tt.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
	if got := samplerFor(0.5).Description(); got == "AlwaysOnSampler" {
		t.Errorf("ratio sampler expected, got %q", got)
	}
}

func TestOperation_SpanAndMetrics(t *testing.T) {
	sr := installRecorder(t)
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	op := StartOperation(context.Background(), metrics, SpanVoiceSubmit, attribute.String(AttrPredictionID, "42"))
	SetSpanAttribute(op.Context(), AttrAudioBytes, int64(2048))
	op.End(nil)

	failed := StartOperation(context.Background(), metrics, SpanVoiceSubmit)
	failed.End(errors.New("storage full"))

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != SpanVoiceSubmit {
		t.Errorf("span name = %q", spans[0].Name())
	}
	var sawPrediction, sawBytes bool
	for _, kv := range spans[0].Attributes() {
		switch string(kv.Key) {
		case AttrPredictionID:
			sawPrediction = kv.Value.AsString() == "42"
		case AttrAudioBytes:
			sawBytes = kv.Value.AsInt64() == 2048
		}
	}
	if !sawPrediction || !sawBytes {
		t.Errorf("missing attributes on %v", spans[0].Attributes())
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("failed span status = %v", spans[1].Status())
	}

	got := collect(t, reader)
	sum, ok := got["voicefeedback.operation.total"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("operation.total missing: %v", got)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("operation.total = %d, want 2", total)
	}
}

func TestMetrics_RecordUploadAndError(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	metrics.RecordUpload(ctx, 48_000, 1500*time.Millisecond)
	metrics.RecordUpload(ctx, 10, 0)
	metrics.RecordError(ctx, "MISSING_FIELD", "feedback")

	got := collect(t, reader)
	size, ok := got["voicefeedback.upload.size"].Data.(metricdata.Histogram[int64])
	if !ok || len(size.DataPoints) != 1 || size.DataPoints[0].Count != 2 {
		t.Errorf("upload.size = %+v", got["voicefeedback.upload.size"].Data)
	}
	dur, ok := got["voicefeedback.audio.duration"].Data.(metricdata.Histogram[float64])
	if !ok || dur.DataPoints[0].Count != 1 {
		t.Errorf("audio.duration = %+v", got["voicefeedback.audio.duration"].Data)
	}
	if _, ok := got["voicefeedback.error.total"]; !ok {
		t.Error("error.total missing")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordOperation(ctx, "x", "ok", time.Second)
	m.RecordUpload(ctx, 1, time.Second)
	m.RecordError(ctx, "x", "y")

	op := StartOperation(ctx, nil, SpanTranscribe)
	op.End(nil)
}

func TestSetSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "k", "v")
	SetSpanError(ctx, errors.New("ignored"))
}

func TestKV(t *testing.T) {
	tests := []struct {
		value any
		want  attribute.Value
	}{
		{"wav", attribute.StringValue("wav")},
		{true, attribute.BoolValue(true)},
		{3, attribute.IntValue(3)},
		{int64(2048), attribute.Int64Value(2048)},
		{1.5, attribute.Float64Value(1.5)},
		{1500 * time.Millisecond, attribute.Int64Value(1500)},
		{[]string{"a", "b"}, attribute.StringSliceValue([]string{"a", "b"})},
		{uint8(7), attribute.StringValue("7")},
	}
	for _, tt := range tests {
		got := kv("k", tt.value)
		if got.Key != "k" || got.Value.Emit() != tt.want.Emit() || got.Value.Type() != tt.want.Type() {
			t.Errorf("kv(%v) = %v (%v), want %v (%v)", tt.value, got.Value.Emit(), got.Value.Type(), tt.want.Emit(), tt.want.Type())
		}
	}
}

func TestServiceResource(t *testing.T) {
	res, err := serviceResource("feedbackd", "1.2.0", "test")
	if err != nil {
		t.Fatal(err)
	}
	attrs := map[attribute.Key]string{}
	for _, a := range res.Attributes() {
		attrs[a.Key] = a.Value.Emit()
	}
	if attrs["service.name"] != "feedbackd" || attrs["service.version"] != "1.2.0" || attrs["deployment.environment"] != "test" {
		t.Errorf("resource attributes = %v", attrs)
	}
}
