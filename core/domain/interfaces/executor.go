package interfaces

import (
	"context"

	"github.com/wanderdata/wanderdata/core/domain"
)

// Executor defines the interface for query execution
type Executor interface {
	// Execute binds params into the definition's statement and runs it
	Execute(ctx context.Context, def *domain.QueryDefinition, params map[string]string) ([]domain.Row, error)
}
