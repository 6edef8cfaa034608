package interfaces

import (
	"context"

	"github.com/wanderdata/wanderdata/core/domain"
)

// Connector defines the interface for store connectors
type Connector interface {
	// Execute runs a read-only statement with positional arguments and returns
	// the rows in the order the store produced them
	Execute(ctx context.Context, statement string, args []any) ([]domain.Row, error)

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// Close closes the connector and releases resources
	Close() error
}

// ConnectorManager defines the interface for managing connectors
type ConnectorManager interface {
	// InitializeAll creates all connectors in parallel from the given adapters
	InitializeAll(ctx context.Context, adapters []*domain.Adapter) error

	// CloseAll closes all connectors in parallel
	CloseAll() error

	// Get returns a connector by name
	Get(name string) (Connector, bool)

	// Count returns the number of managed connectors
	Count() int
}
