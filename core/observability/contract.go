package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Span attribute and log field names
const (
	AttrTraceID    = "trace_id"
	AttrSpanID     = "span_id"
	AttrRequestID  = "request.id"
	AttrQueryName  = "query.name"
	AttrQueryGroup = "query.group"
	AttrQueryRows  = "query.rows"
	AttrQueryParam = "query.param."
	AttrHTTPRoute  = "http.route"
)

var secretKeySubstrings = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"authorization",
	"connection_string",
	"dsn",
}

// RedactAttributeValue masks values for known-sensitive attribute keys.
func RedactAttributeValue(key string, value string) string {
	lower := strings.ToLower(key)
	for _, needle := range secretKeySubstrings {
		if strings.Contains(lower, needle) {
			return "[REDACTED]"
		}
	}
	return value
}

// TraceFields returns the trace and span ids of the active span as log
// fields. The map is empty when ctx carries no valid span.
func TraceFields(ctx context.Context) map[string]any {
	fields := make(map[string]any, 2)
	if ctx == nil {
		return fields
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return fields
	}
	fields[AttrTraceID] = spanCtx.TraceID().String()
	fields[AttrSpanID] = spanCtx.SpanID().String()
	return fields
}
