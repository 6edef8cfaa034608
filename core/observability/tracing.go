package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wanderdata/wanderdata"

// Tracer returns the tracer used for spans around catalog queries
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartQuerySpan opens a client span for one catalog query. Parameter
// values are attached under AttrQueryParam with sensitive keys redacted.
func StartQuerySpan(ctx context.Context, name, group string, params map[string]string) (context.Context, trace.Span) {
	attrs := make([]attribute.KeyValue, 0, 2+len(params))
	attrs = append(attrs,
		attribute.String(AttrQueryName, name),
		attribute.String(AttrQueryGroup, group),
	)
	for key, value := range params {
		attrs = append(attrs, attribute.String(AttrQueryParam+key, RedactAttributeValue(key, value)))
	}
	return Tracer().Start(ctx, "query "+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndQuerySpan records the outcome of a query on span and ends it
func EndQuerySpan(span trace.Span, rows int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query execution failed")
	} else {
		span.SetAttributes(attribute.Int(AttrQueryRows, rows))
	}
	span.End()
}

func buildTraceProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	// without an exporter spans are still created so trace ids reach the logs
	if !cfg.Enabled {
		return sdktrace.NewTracerProvider(), nil
	}

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.TraceSamplingRate)),
		sdktrace.WithBatcher(exporter),
	)

	return provider, nil
}
