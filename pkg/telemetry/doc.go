// Package telemetry holds the Prometheus metrics and OpenTelemetry spans
// recorded by the asset pipeline.
//
// Metrics are registered on the registerer given with WithRegistry, or on
// prometheus.DefaultRegisterer. All recording methods are safe on a nil
// *Metrics so instrumented code does not need to branch.
//
// Spans use the global tracer provider. Configure it in main() before
// building the pipeline:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
package telemetry
