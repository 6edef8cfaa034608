package executor_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/application/executor"
	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/observability"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

type mockConnector struct {
	mock.Mock
}

func (m *mockConnector) Execute(ctx context.Context, statement string, args []any) ([]domain.Row, error) {
	called := m.Called(ctx, statement, args)
	rows, _ := called.Get(0).([]domain.Row)
	return rows, called.Error(1)
}

func (m *mockConnector) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockConnector) Close() error { return m.Called().Error(0) }

func bookingItem(t *testing.T) *domain.QueryDefinition {
	t.Helper()
	def, err := catalog.MustDefault().Get("booking_item")
	require.NoError(t, err)
	return def
}

func TestExecute_BindsDefaultsAndPreservesOrder(t *testing.T) {
	conn := new(mockConnector)
	rows := []domain.Row{
		domain.NewRow([]string{"hotel_id"}, []any{"H1"}),
		domain.NewRow([]string{"hotel_id"}, []any{"H2"}),
	}
	conn.On("Execute", mock.Anything, mock.MatchedBy(func(s string) bool {
		return !containsPlaceholder(s)
	}), []any{domain.StatusConfirmed}).Return(rows, nil).Once()

	got, err := executor.NewExecutor(conn).Execute(context.Background(), bookingItem(t), map[string]string{"unknown": "x"})
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	conn.AssertExpectations(t)
}

func TestExecute_ForwardsSuppliedStatus(t *testing.T) {
	conn := new(mockConnector)
	conn.On("Execute", mock.Anything, mock.Anything, []any{domain.StatusCancelled}).Return([]domain.Row{}, nil).Once()

	got, err := executor.NewExecutor(conn).Execute(context.Background(), bookingItem(t), map[string]string{"status": domain.StatusCancelled})
	require.NoError(t, err)
	assert.Empty(t, got)
	conn.AssertExpectations(t)
}

func TestExecute_WrapsStoreFailure(t *testing.T) {
	conn := new(mockConnector)
	storeErr := stderrors.New("relation \"travel.bookings\" does not exist")
	conn.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(nil, storeErr).Once()

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	_, err := executor.NewExecutor(conn).Execute(ctx, bookingItem(t), map[string]string{"status": "TICKETED"})
	require.Error(t, err)
	assert.True(t, errors.IsDataAccess(err))
	assert.ErrorIs(t, err, storeErr)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "booking_item", appErr.Fields["query"])
	assert.Equal(t, map[string]any{"status": "TICKETED"}, appErr.Fields["params"])
	assert.NotContains(t, appErr.Error(), "SELECT")
	conn.AssertNumberOfCalls(t, "Execute", 1)
}

func TestExecute_InvalidDefinition(t *testing.T) {
	conn := new(mockConnector)
	_, err := executor.NewExecutor(conn).Execute(context.Background(), &domain.QueryDefinition{Name: "empty"}, nil)
	require.Error(t, err)
	conn.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_AppliesTimeout(t *testing.T) {
	conn := new(mockConnector)
	conn.On("Execute", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything).Return([]domain.Row{}, nil).Once()

	_, err := executor.NewExecutor(conn, executor.WithTimeout(time.Second)).Execute(context.Background(), bookingItem(t), nil)
	require.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestExecute_RecordsMetrics(t *testing.T) {
	conn := new(mockConnector)
	conn.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Row{}, nil).Once()
	conn.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(nil, stderrors.New("boom")).Once()

	metrics := observability.NewMetrics()
	exec := executor.NewExecutor(conn, executor.WithMetrics(metrics))
	_, err := exec.Execute(context.Background(), bookingItem(t), nil)
	require.NoError(t, err)
	_, err = exec.Execute(context.Background(), bookingItem(t), nil)
	require.Error(t, err)

	count, err := testutil.GatherAndCount(metrics.Registry(), "wanderdata_query_executions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func containsPlaceholder(s string) bool {
	return len(catalog.Placeholders(s)) > 0
}
