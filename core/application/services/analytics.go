package services

import (
	"context"

	"github.com/wanderdata/wanderdata/core/application/mapper"
	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// AnalyticsService implements the analytics operations shared by all transports
type AnalyticsService struct {
	catalog  *catalog.Catalog
	executor interfaces.Executor
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(c *catalog.Catalog, executor interfaces.Executor) *AnalyticsService {
	return &AnalyticsService{
		catalog:  c,
		executor: executor,
	}
}

// List runs the named resource query and returns a slice of its record type.
// Count queries are only reachable through Counts.
func (s *AnalyticsService) List(ctx context.Context, name string, params map[string]string) (any, error) {
	def, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	if def.Group == domain.GroupCount {
		return nil, errors.NotFound(name)
	}
	schema, ok := s.catalog.Schema(name)
	if !ok {
		return nil, errors.NotFound(name)
	}

	rows, err := s.executor.Execute(ctx, def, params)
	if err != nil {
		return nil, err
	}

	records, err := mapper.MapSchema(def.Name, rows, schema)
	if err != nil {
		logger.New("service").Errorf("Result of '%s' does not fit %s: %v", def.Name, schema.Name(), err)
		return nil, err
	}
	return records, nil
}

// Counts runs the entity count queries one after another. Any failure
// aborts the aggregate.
func (s *AnalyticsService) Counts(ctx context.Context) (*domain.Counts, error) {
	counts := &domain.Counts{}
	targets := map[string]*int64{
		catalog.HotelCount:    &counts.HotelCount,
		catalog.FlightCount:   &counts.FlightCount,
		catalog.CustomerCount: &counts.CustomerCount,
		catalog.PaymentCount:  &counts.PaymentCount,
		catalog.EventsCount:   &counts.EventsCount,
	}

	for _, name := range catalog.CountNames {
		def, err := s.catalog.Get(name)
		if err != nil {
			return nil, err
		}
		rows, err := s.executor.Execute(ctx, def, nil)
		if err != nil {
			return nil, err
		}
		n, err := mapper.Scalar(name, rows)
		if err != nil {
			logger.New("service").Errorf("Count '%s' is malformed: %v", name, err)
			return nil, err
		}
		*targets[name] = n
	}
	return counts, nil
}

// Definitions returns the catalog in registration order
func (s *AnalyticsService) Definitions() []*domain.QueryDefinition {
	return s.catalog.All()
}

// Resources returns the definitions served individually, in registration order
func (s *AnalyticsService) Resources() []*domain.QueryDefinition {
	return s.catalog.Resources()
}
