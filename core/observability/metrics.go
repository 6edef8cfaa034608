package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server instance. A nil
// *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec
	queryExecutions     *prometheus.CounterVec
	queryDuration       *prometheus.HistogramVec
	queryRows           *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry together with the
// Go runtime and process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "route"},
		),
		queryExecutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wanderdata_query_executions_total",
				Help: "Catalog query executions by outcome",
			},
			[]string{"query", "success"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wanderdata_query_duration_seconds",
				Help:    "Catalog query execution time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		queryRows: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wanderdata_query_rows",
				Help:    "Rows returned per catalog query execution",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"query"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpResponseSize,
		m.queryExecutions,
		m.queryDuration,
		m.queryRows,
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, bytesWritten int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	if bytesWritten > 0 {
		m.httpResponseSize.WithLabelValues(method, route).Observe(float64(bytesWritten))
	}
}

func (m *Metrics) RecordQueryExecution(queryName string, success bool, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	m.queryExecutions.WithLabelValues(queryName, strconv.FormatBool(success)).Inc()
	m.queryDuration.WithLabelValues(queryName).Observe(duration.Seconds())
	if success {
		m.queryRows.WithLabelValues(queryName).Observe(float64(rows))
	}
}
