package connectors

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/infrastructure/logging"
)

// PostgresConnector implements the Connector interface for PostgreSQL using pgx/v5
type PostgresConnector struct {
	pool *pgxpool.Pool
}

// withOptions appends connection options such as search_path to a URL or
// key=value connection string
func withOptions(connectionString string, options map[string]string) (string, error) {
	if len(options) == 0 {
		return connectionString, nil
	}

	if strings.HasPrefix(connectionString, "postgres://") || strings.HasPrefix(connectionString, "postgresql://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return "", fmt.Errorf("failed to parse postgres connection string: %w", err)
		}
		query := parsedURL.Query()
		for key, value := range options {
			query.Set(key, value)
		}
		parsedURL.RawQuery = query.Encode()
		return parsedURL.String(), nil
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", key, options[key]))
	}
	return strings.TrimSpace(connectionString + " " + strings.Join(parts, " ")), nil
}

// NewPostgresConnector opens a pgx connection pool and pings it
func NewPostgresConnector(ctx context.Context, adapter *domain.Adapter) (*PostgresConnector, error) {
	connectionString, err := withOptions(adapter.ConnectionString, adapter.Options)
	if err != nil {
		return nil, err
	}

	log := logging.New("connector:postgres")
	log.Debugf("Opening PostgreSQL connection pool (pgx/v5)")

	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string: %w", err)
	}
	if adapter.MaxConns > 0 {
		config.MaxConns = int32(adapter.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	log.Debugf("Testing connection with ping")
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Debugf("PostgreSQL connection pool opened successfully")
	return &PostgresConnector{pool: pool}, nil
}

// Execute runs statement with positional arguments
func (p *PostgresConnector) Execute(ctx context.Context, statement string, args []any) ([]domain.Row, error) {
	rows, err := p.pool.Query(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescriptions))
	for i, fd := range fieldDescriptions {
		columns[i] = fd.Name
	}

	results := make([]domain.Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to get row values: %w", err)
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		results = append(results, domain.NewRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

// Ping verifies the pool can reach the server
func (p *PostgresConnector) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the database connection pool
func (p *PostgresConnector) Close() error {
	if p.pool != nil {
		log := logging.New("connector:postgres")
		log.Debugf("Closing PostgreSQL connection pool")
		p.pool.Close()
	}
	return nil
}
