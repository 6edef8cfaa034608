package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/wanderdata/wanderdata/core/logger"
)

// Providers owns the installed tracer provider
type Providers struct {
	traceProvider *sdktrace.TracerProvider
}

type otelLoggerErrorHandler struct {
	log logger.Logger
}

func (h otelLoggerErrorHandler) Handle(err error) {
	if err == nil {
		return
	}
	h.log.Warnf("OpenTelemetry warning: %v", err)
}

// Setup installs the global tracer provider and propagators. With tracing
// disabled the provider records spans locally and exports nothing.
func Setup(ctx context.Context, base Config) (*Providers, error) {
	cfg := ResolveConfig(base)

	traceProvider, err := buildTraceProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log := logger.New("observability")
	otel.SetErrorHandler(otelLoggerErrorHandler{log: log})

	if cfg.Enabled {
		log.Infof("Exporting traces to %s (sampling %.2f)", cfg.OTLPEndpoint, cfg.TraceSamplingRate)
	}

	return &Providers{traceProvider: traceProvider}, nil
}

func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil || p.traceProvider == nil {
		return nil
	}
	return p.traceProvider.Shutdown(ctx)
}
