package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/dto"
	"github.com/wanderdata/wanderdata/core/observability"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := chimiddleware.RequestID(RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ctxutil.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(ctxutil.RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limiter  *stubLimiter
		expected int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, expected: http.StatusOK},
		{name: "denied", limiter: &stubLimiter{allowed: false}, expected: http.StatusTooManyRequests},
		{name: "limiter down fails open", limiter: &stubLimiter{err: errors.New("dial tcp: refused")}, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RateLimitByIP(tt.limiter, 10, time.Minute)(http.HandlerFunc(ok))
			req := httptest.NewRequest(http.MethodGet, "/v0/events/", nil)
			req.RemoteAddr = "10.0.0.7"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, []string{"wanderdata:ratelimit:10.0.0.7"}, tt.limiter.keys)
			if tt.expected == http.StatusTooManyRequests {
				assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			}
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	h := ValidateQueryParams("max=3")(http.HandlerFunc(ok))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?status=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?zeta=toolong&alpha=toolong&ok=1", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Details, 2)
	assert.Equal(t, "alpha", body.Details[0].Field)
	assert.Equal(t, "zeta", body.Details[1].Field)
	assert.Equal(t, "max", body.Details[0].Tag)
}

func TestTracing_NamesSpanAfterRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestID)
	r.Use(Tracing)
	r.Get("/v0/{name}/", ok)

	req := httptest.NewRequest(http.MethodGet, "/v0/events/", nil)
	req.Header.Set(ctxutil.RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	// chi reports the pattern without the trailing slash
	assert.Equal(t, "GET /v0/{name}", ended[0].Name())

	attrs := attribute.NewSet(ended[0].Attributes()...)
	id, _ := attrs.Value(observability.AttrRequestID)
	assert.Equal(t, "req-42", id.AsString())
	route, _ := attrs.Value(observability.AttrHTTPRoute)
	assert.Equal(t, "/v0/{name}", route.AsString())
}
