package executor

import (
	"context"
	"time"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/observability"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// Executor implements the Executor interface
type Executor struct {
	connector interfaces.Connector
	metrics   *observability.Metrics
	timeout   time.Duration
}

// Option configures an Executor
type Option func(*Executor)

// WithMetrics records every execution on m
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// WithTimeout bounds each statement by d. Zero, the default, leaves the
// bound to the store.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// NewExecutor creates a new query executor over a single store connector
func NewExecutor(connector interfaces.Connector, opts ...Option) *Executor {
	e := &Executor{connector: connector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute binds params into the definition's statement and runs it against
// the store. Rows come back in store order. Store failures are returned as
// DATA_ACCESS errors carrying the query name and the bound parameter values.
func (e *Executor) Execute(ctx context.Context, def *domain.QueryDefinition, params map[string]string) ([]domain.Row, error) {
	if err := def.Validate(); err != nil {
		return nil, errors.WrapError(errors.ErrCodeInternalError, "invalid query definition", err)
	}

	resolved := catalog.Resolve(def, params)
	fields := map[string]any{
		"query":  def.Name,
		"params": resolved,
	}
	if id := ctxutil.GetRequestID(ctx); id != "" {
		fields["request_id"] = id
	}

	ctx, span := observability.StartQuerySpan(ctx, def.Name, string(def.Group), resolved)
	for k, v := range observability.TraceFields(ctx) {
		fields[k] = v
	}
	log := logger.New("executor").With(fields)

	statement, args, err := catalog.Bind(def, params)
	if err != nil {
		observability.EndQuerySpan(span, 0, err)
		log.Errorf("Failed to bind parameters: %v", err)
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	log.Debugf("Executing query")
	start := time.Now()
	rows, err := e.connector.Execute(ctx, statement, args)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.RecordQueryExecution(def.Name, false, 0, elapsed)
		observability.EndQuerySpan(span, 0, err)
		log.Errorf("Query execution failed: %v", err)
		return nil, errors.DataAccess(def.Name, paramFields(resolved), err)
	}

	e.metrics.RecordQueryExecution(def.Name, true, len(rows), elapsed)
	observability.EndQuerySpan(span, len(rows), nil)
	log.Debugf("Query returned %d row(s) in %s", len(rows), elapsed)
	return rows, nil
}

func paramFields(resolved map[string]string) map[string]any {
	out := make(map[string]any, len(resolved))
	for k, v := range resolved {
		out[k] = v
	}
	return out
}
