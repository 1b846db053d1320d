// Package observability provides OpenTelemetry tracing and metrics for the
// transcription pipeline. Both exporters speak OTLP/HTTP and are only
// initialized when an endpoint is configured; with no endpoint the service
// runs with the global no-op providers.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("medscribe"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("medscribe"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("medscribe"))
//	metrics.RecordOperation(ctx, "medscribe", "transcription", "ok", duration)
package observability
