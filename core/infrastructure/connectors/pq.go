package connectors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/infrastructure/logging"
)

// PQConnector implements the Connector interface for PostgreSQL through
// database/sql and lib/pq
type PQConnector struct {
	db *sql.DB
}

// NewPQConnector opens a lib/pq connection and pings it
func NewPQConnector(ctx context.Context, adapter *domain.Adapter) (*PQConnector, error) {
	connectionString, err := withOptions(adapter.ConnectionString, adapter.Options)
	if err != nil {
		return nil, err
	}

	log := logging.New("connector:pq")
	log.Debugf("Opening PostgreSQL connection (lib/pq)")

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if adapter.MaxConns > 0 {
		db.SetMaxOpenConns(adapter.MaxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Debugf("PostgreSQL connection opened successfully")
	return &PQConnector{db: db}, nil
}

// Execute runs statement with positional arguments
func (p *PQConnector) Execute(ctx context.Context, statement string, args []any) ([]domain.Row, error) {
	rows, err := p.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return scanSQLRows(rows)
}

// Ping verifies the server is reachable
func (p *PQConnector) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the connection pool
func (p *PQConnector) Close() error {
	return p.db.Close()
}
