package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/shared/errors"
)

func TestNewAppError(t *testing.T) {
	tests := []struct {
		name           string
		code           errors.ErrorCode
		message        string
		err            error
		expectedStatus int
	}{
		{
			name:           "not found error",
			code:           errors.ErrCodeNotFound,
			message:        "resource not found",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "validation error",
			code:           errors.ErrCodeValidationError,
			message:        "invalid input",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "data access error",
			code:           errors.ErrCodeDataAccess,
			message:        "query failed",
			err:            stderrors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "connection failed",
			code:           errors.ErrCodeConnectionFailed,
			message:        "store unreachable",
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.NewAppError(tt.code, tt.message, tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, tt.expectedStatus, appErr.Status)
			assert.Equal(t, tt.err, appErr.Unwrap())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withCause := errors.WrapError(errors.ErrCodeNotFound, "resource not found", stderrors.New("underlying error"))
	assert.Equal(t, "NOT_FOUND: resource not found (underlying error)", withCause.Error())

	bare := errors.NewAppError(errors.ErrCodeValidationError, "validation failed", nil)
	assert.Equal(t, "VALIDATION_ERROR: validation failed", bare.Error())
}

func TestNotFound(t *testing.T) {
	err := errors.NotFound("hotel_rooms")
	assert.Equal(t, errors.ErrCodeQueryNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "hotel_rooms", err.Fields["query"])
	assert.Contains(t, err.Error(), "hotel_rooms")
}

func TestDataAccess(t *testing.T) {
	cause := stderrors.New("relation \"travel.hotels\" does not exist")
	params := map[string]any{"status": "CONFIRMED"}

	err := errors.DataAccess("booking_item", params, cause)
	assert.Equal(t, errors.ErrCodeDataAccess, err.Code)
	assert.Equal(t, "booking_item", err.Fields["query"])
	assert.Equal(t, params, err.Fields["params"])
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Message, "SELECT")
}

func TestSchemaMismatch(t *testing.T) {
	err := errors.SchemaMismatch("hotel_count", "expected 1 row, got %d", 0)
	assert.Equal(t, errors.ErrCodeSchemaMismatch, err.Code)
	assert.Equal(t, "expected 1 row, got 0", err.Message)
	assert.Equal(t, "hotel_count", err.Fields["query"])
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", errors.DataAccess("events", nil, stderrors.New("boom")))

	tests := []struct {
		name       string
		err        error
		notFound   bool
		validation bool
		dataAccess bool
		mismatch   bool
	}{
		{name: "query not found", err: errors.NotFound("x"), notFound: true},
		{name: "generic not found", err: errors.NewAppError(errors.ErrCodeNotFound, "nope", nil), notFound: true},
		{name: "invalid input", err: errors.NewAppError(errors.ErrCodeInvalidInput, "bad", nil), validation: true},
		{name: "wrapped data access", err: wrapped, dataAccess: true},
		{name: "connection failed", err: errors.NewAppError(errors.ErrCodeConnectionFailed, "down", nil), dataAccess: true},
		{name: "schema mismatch", err: errors.SchemaMismatch("q", "missing column"), mismatch: true},
		{name: "plain error", err: stderrors.New("regular error")},
		{name: "nil error", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, errors.IsNotFound(tt.err))
			assert.Equal(t, tt.validation, errors.IsValidationError(tt.err))
			assert.Equal(t, tt.dataAccess, errors.IsDataAccess(tt.err))
			assert.Equal(t, tt.mismatch, errors.IsSchemaMismatch(tt.err))
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr, ok := errors.AsAppError(fmt.Errorf("outer: %w", errors.NotFound("events")))
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeQueryNotFound, appErr.Code)

	_, ok = errors.AsAppError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestWith(t *testing.T) {
	err := errors.NewAppError(errors.ErrCodeInternalError, "x", nil).With("a", 1).With("b", "two")
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, err.Fields)
}
