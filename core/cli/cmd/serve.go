package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wanderdata/wanderdata/core/cli/internal"
	"github.com/wanderdata/wanderdata/core/config"
	"github.com/wanderdata/wanderdata/core/infrastructure/di"
	transporthttp "github.com/wanderdata/wanderdata/core/infrastructure/transport/http"
	httpmiddleware "github.com/wanderdata/wanderdata/core/infrastructure/transport/http/middleware"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/observability"
)

type serveOptions struct {
	root *rootOptions
	port string
	seed bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{root: root}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analytics API server",
		Long: `Run the analytics API server against the configured store.
With --seed the server runs on an in-memory DuckDB database loaded with a
small sample dataset instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return opts.run(ctx)
		},
	}
	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Server port (overrides config file and PORT env var)")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Serve the built-in sample dataset from an in-memory DuckDB database")
	return cmd
}

func (o *serveOptions) run(ctx context.Context) error {
	log := logger.New("main")

	cfg, err := o.root.loadConfig()
	if err != nil {
		return err
	}
	port := internal.ResolvePort(o.port, cfg)
	log.Infof("Configuration loaded")
	log.Debugf("Connector: %s", cfg.Database.Connector)

	providers, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return logger.Tagf("observability", "failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Tracer shutdown: %v", err)
		}
	}()

	container, err := di.NewContainer(ctx, cfg, di.Options{Seed: o.seed, Metrics: true})
	if err != nil {
		return logger.WithTag("di", err)
	}
	defer container.Close()

	serverOpts := transporthttp.Options{
		Port:           port,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        container.Metrics,
	}
	if limiter := openRateLimiter(ctx, cfg.RateLimit); limiter != nil {
		defer limiter.Close()
		serverOpts.RateLimiter = limiter
		serverOpts.RateLimit = cfg.RateLimit.Requests
		serverOpts.RateWindow = cfg.RateLimit.Window
	}

	server := transporthttp.NewServer(serverOpts)
	baseURL := internal.ResolveBaseURL(cfg, port)
	if err := transporthttp.RegisterRoutes(server.Router(), container.Service, container.Catalog, container.Metrics, baseURL); err != nil {
		return logger.WithTag("routes", err)
	}
	log.Infof("Serving %d resources, docs at %s/docs", len(container.Catalog.Resources()), baseURL)

	errCh := server.Start()
	select {
	case <-ctx.Done():
		return server.Stop()
	case err := <-errCh:
		if err != nil {
			return logger.WithTag("http", err)
		}
		return nil
	}
}

// openRateLimiter connects to Redis when a URL is configured. A store that
// cannot be reached disables limiting instead of failing startup.
func openRateLimiter(ctx context.Context, cfg config.RateLimitConfig) *httpmiddleware.RedisRateLimiter {
	if cfg.RedisURL == "" || cfg.Requests <= 0 {
		return nil
	}
	log := logger.New("ratelimit")
	limiter, err := httpmiddleware.NewRedisRateLimiterFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.Warnf("Rate limiting disabled: %v", err)
		return nil
	}
	log.Infof("Rate limiting to %d requests per %s per client", cfg.Requests, cfg.Window)
	return limiter
}
