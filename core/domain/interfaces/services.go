package interfaces

import (
	"context"

	"github.com/wanderdata/wanderdata/core/domain"
)

// AnalyticsService defines the operations shared by every transport
type AnalyticsService interface {
	// List runs the named catalog query and returns its typed records
	List(ctx context.Context, name string, params map[string]string) (any, error)

	// Counts runs the five entity count queries
	Counts(ctx context.Context) (*domain.Counts, error)

	// Definitions returns the catalog in registration order
	Definitions() []*domain.QueryDefinition
}
