package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	httpmiddleware "github.com/wanderdata/wanderdata/core/infrastructure/transport/http/middleware"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/observability"
)

// Options configures the HTTP server
type Options struct {
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string
	Metrics        *observability.Metrics
	// RateLimiter enables per-IP limiting when set
	RateLimiter httpmiddleware.RateLimiter
	RateLimit   int
	RateWindow  time.Duration
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	port    string
	metrics *observability.Metrics
}

// NewServer creates a new HTTP server with the standard middleware chain
func NewServer(opts Options) *Server {
	if opts.Port == "" {
		opts.Port = "8080"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httpmiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if opts.Metrics != nil {
		r.Use(httpmiddleware.Metrics(opts.Metrics))
	}
	r.Use(httpmiddleware.Tracing)

	if opts.RateLimiter != nil && opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httpmiddleware.RateLimitByIP(opts.RateLimiter, opts.RateLimit, window))
	}

	return &Server{
		router:  r,
		port:    opts.Port,
		metrics: opts.Metrics,
	}
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Metrics returns the collectors recorded by the server, or nil
func (s *Server) Metrics() *observability.Metrics {
	return s.metrics
}

// Start starts the HTTP server without blocking. Listen errors after
// startup are sent on the returned channel.
func (s *Server) Start() <-chan error {
	log := logger.New("http")
	log.Infof("Starting HTTP server on port %s", s.port)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Successf("HTTP server listening on http://127.0.0.1:%s", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("HTTP server error: %v", err)
			errCh <- fmt.Errorf("listen on :%s: %w", s.port, err)
		}
		close(errCh)
	}()

	return errCh
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop() error {
	log := logger.New("http")
	log.Infof("Shutting down HTTP server")

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
		if closeErr := s.server.Close(); closeErr != nil {
			log.Errorf("Error force closing HTTP server: %v", closeErr)
		}
		return err
	}

	log.Infof("HTTP server stopped")
	return nil
}

// requestLogger logs one line per request through the tagged logger
func requestLogger(next http.Handler) http.Handler {
	log := logger.New("http:access")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.With(map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Infof("%s %s", r.Method, r.URL.Path)
	})
}
