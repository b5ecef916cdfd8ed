// Package observability wires OpenTelemetry tracing and metrics for the
// feedback service: OTLP/HTTP exporters, a service resource, span helpers
// and the voice feedback instruments.
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry, cfg.Name, cfg.Version, cfg.Environment)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
//	op := observability.StartOperation(ctx, metrics, observability.SpanVoiceSubmit)
//	defer op.End(err)
//
// A nil *Metrics is valid and records nothing, so tests and disabled
// telemetry need no special casing.
package observability
