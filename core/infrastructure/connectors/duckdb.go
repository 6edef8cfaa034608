package connectors

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/infrastructure/logging"
)

// DuckDBConnector implements the Connector interface on an embedded DuckDB
// database. An empty connection string opens an in-memory database.
type DuckDBConnector struct {
	db *sql.DB
}

// NewDuckDBConnector opens the DuckDB database named by the adapter
func NewDuckDBConnector(ctx context.Context, adapter *domain.Adapter) (*DuckDBConnector, error) {
	log := logging.New("connector:duckdb")
	if adapter.ConnectionString == "" {
		log.Debugf("Opening in-memory DuckDB database")
	} else {
		log.Debugf("Opening DuckDB database %s", adapter.ConnectionString)
	}

	db, err := sql.Open("duckdb", adapter.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}
	// an in-memory database lives inside a single connection
	if adapter.ConnectionString == "" {
		db.SetMaxOpenConns(1)
	} else if adapter.MaxConns > 0 {
		db.SetMaxOpenConns(adapter.MaxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping duckdb database: %w", err)
	}
	return &DuckDBConnector{db: db}, nil
}

// Execute runs statement with positional arguments
func (d *DuckDBConnector) Execute(ctx context.Context, statement string, args []any) ([]domain.Row, error) {
	rows, err := d.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return scanSQLRows(rows)
}

// Exec runs a statement that returns no rows. It is used to load fixture
// data and parquet exports into a local database.
func (d *DuckDBConnector) Exec(ctx context.Context, statement string, args ...any) error {
	if _, err := d.db.ExecContext(ctx, statement, args...); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Ping verifies the database is open
func (d *DuckDBConnector) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the database
func (d *DuckDBConnector) Close() error {
	return d.db.Close()
}
