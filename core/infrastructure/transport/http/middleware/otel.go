package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderdata/wanderdata/core/observability"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
)

// Tracing wraps every request in a server span. Once chi has matched the
// request the span is renamed after the route pattern and tagged with the
// request id.
func Tracing(next http.Handler) http.Handler {
	routed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		span := trace.SpanFromContext(r.Context())
		if id := ctxutil.GetRequestID(r.Context()); id != "" {
			span.SetAttributes(attribute.String(observability.AttrRequestID, id))
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attribute.String(observability.AttrHTTPRoute, pattern))
			}
		}
	})

	return otelhttp.NewHandler(
		routed,
		"http.server",
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
