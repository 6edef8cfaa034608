package connectors

import (
	"context"
	"fmt"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
)

// NewConnector creates the connector matching the adapter's connector type
func NewConnector(ctx context.Context, adapter *domain.Adapter) (interfaces.Connector, error) {
	if err := adapter.Validate(); err != nil {
		return nil, err
	}
	switch adapter.Connector {
	case domain.ConnectorPostgres:
		return NewPostgresConnector(ctx, adapter)
	case domain.ConnectorPQ:
		return NewPQConnector(ctx, adapter)
	case domain.ConnectorDuckDB:
		return NewDuckDBConnector(ctx, adapter)
	default:
		return nil, fmt.Errorf("unsupported connector type: %s", adapter.Connector)
	}
}
