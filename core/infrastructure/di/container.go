package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/wanderdata/wanderdata/core/application/executor"
	"github.com/wanderdata/wanderdata/core/application/services"
	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/config"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	infraconnectors "github.com/wanderdata/wanderdata/core/infrastructure/connectors"
	"github.com/wanderdata/wanderdata/core/infrastructure/seed"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/observability"
)

// Options tunes container construction
type Options struct {
	// Seed replaces the configured store with an in-memory DuckDB database
	// loaded with the sample dataset
	Seed bool
	// Metrics enables Prometheus collectors
	Metrics bool
	// Factory overrides connector creation, mainly for tests
	Factory infraconnectors.Factory
}

// Container holds all dependencies
type Container struct {
	Config           *config.Config
	Catalog          *catalog.Catalog
	ConnectorManager interfaces.ConnectorManager
	Connector        interfaces.Connector
	Executor         interfaces.Executor
	Service          *services.AnalyticsService
	Metrics          *observability.Metrics
}

// NewContainer opens the store and wires the application layers
func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	log := logger.New("di")

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	adapter, err := cfg.Adapter()
	if err != nil {
		return nil, err
	}
	if opts.Seed {
		log.Infof("Using in-memory DuckDB store with the sample dataset")
		adapter = &domain.Adapter{Name: config.AdapterName, Connector: domain.ConnectorDuckDB}
	}

	factory := opts.Factory
	if factory == nil {
		factory = infraconnectors.NewConnector
	}
	manager := infraconnectors.NewConnectorManagerWithFactory(factory)
	if err := manager.InitializeAll(ctx, []*domain.Adapter{adapter}); err != nil {
		return nil, err
	}
	conn, ok := manager.Get(adapter.Name)
	if !ok {
		manager.CloseAll()
		return nil, fmt.Errorf("adapter '%s' was not initialized", adapter.Name)
	}

	if opts.Seed {
		execer, ok := conn.(seed.Execer)
		if !ok {
			manager.CloseAll()
			return nil, errors.New("store does not accept seed statements")
		}
		if err := seed.Load(ctx, execer); err != nil {
			manager.CloseAll()
			return nil, fmt.Errorf("load sample dataset: %w", err)
		}
	}

	var metrics *observability.Metrics
	if opts.Metrics {
		metrics = observability.NewMetrics()
	}

	exec := executor.NewExecutor(conn,
		executor.WithMetrics(metrics),
		executor.WithTimeout(cfg.Database.QueryTimeout),
	)

	return &Container{
		Config:           cfg,
		Catalog:          cat,
		ConnectorManager: manager,
		Connector:        conn,
		Executor:         exec,
		Service:          services.NewAnalyticsService(cat, exec),
		Metrics:          metrics,
	}, nil
}

// Close closes all resources
func (c *Container) Close() error {
	if c.ConnectorManager != nil {
		return c.ConnectorManager.CloseAll()
	}
	return nil
}
