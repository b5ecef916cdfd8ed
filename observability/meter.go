package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/voicefeedback/logger"
)

// MeterConfig configures the meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP host:port.
	Endpoint string
	Insecure bool
	// Interval is the export period.
	Interval time.Duration
}

// InitMeter installs a periodic OTLP meter provider as the global one.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	res, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("metric resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.WithComponent("telemetry").Info("Metrics enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the voice feedback instruments. A nil *Metrics records nothing.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	uploadBytes       metric.Int64Histogram
	audioDuration     metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.operationTotal, err = meter.Int64Counter("voicefeedback.operation.total",
		metric.WithDescription("Operations by name and status"),
	); err != nil {
		return nil, fmt.Errorf("creating operation.total counter: %w", err)
	}
	if m.operationDuration, err = meter.Float64Histogram("voicefeedback.operation.duration",
		metric.WithDescription("Operation duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating operation.duration histogram: %w", err)
	}
	if m.uploadBytes, err = meter.Int64Histogram("voicefeedback.upload.size",
		metric.WithDescription("Size of accepted voice uploads"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("creating upload.size histogram: %w", err)
	}
	if m.audioDuration, err = meter.Float64Histogram("voicefeedback.audio.duration",
		metric.WithDescription("Duration of accepted voice recordings"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating audio.duration histogram: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("voicefeedback.error.total",
		metric.WithDescription("Errors by code and component"),
	); err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}
	return m, nil
}

// RecordOperation counts one finished operation and its duration.
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordUpload records the size and audio length of an accepted upload.
// A zero duration (non-PCM audio) is not recorded.
func (m *Metrics) RecordUpload(ctx context.Context, bytes int64, audio time.Duration) {
	if m == nil {
		return
	}
	m.uploadBytes.Record(ctx, bytes)
	if audio > 0 {
		m.audioDuration.Record(ctx, audio.Seconds())
	}
}

// RecordError counts an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
