package domain

import "fmt"

// ConnectorType selects the driver used to reach the relational store
type ConnectorType string

const (
	ConnectorPostgres ConnectorType = "postgres"
	ConnectorPQ       ConnectorType = "pq"
	ConnectorDuckDB   ConnectorType = "duckdb"
)

// ParseConnectorType converts a configuration string into a ConnectorType
func ParseConnectorType(s string) (ConnectorType, error) {
	switch ConnectorType(s) {
	case ConnectorPostgres, ConnectorPQ, ConnectorDuckDB:
		return ConnectorType(s), nil
	case "postgresql", "pgx":
		return ConnectorPostgres, nil
	default:
		return "", fmt.Errorf("unsupported connector '%s'", s)
	}
}

// Adapter binds a name to a store connection
type Adapter struct {
	Name             string
	Connector        ConnectorType
	ConnectionString string
	Options          map[string]string
	MaxConns         int
}

// Validate validates the adapter domain model
func (a *Adapter) Validate() error {
	if a == nil {
		return ErrInvalidAdapter
	}
	if a.Name == "" {
		return ErrInvalidAdapterName
	}
	// DuckDB opens an in-memory database when the connection string is empty
	if a.ConnectionString == "" && a.Connector != ConnectorDuckDB {
		return ErrInvalidConnectionString
	}
	return nil
}

// Domain errors
var (
	ErrInvalidAdapter          = &DomainError{Message: "adapter cannot be nil"}
	ErrInvalidAdapterName      = &DomainError{Message: "adapter name cannot be empty"}
	ErrInvalidConnectionString = &DomainError{Message: "connection string cannot be empty"}
)
