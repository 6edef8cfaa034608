package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Domain errors
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeQueryNotFound   ErrorCode = "QUERY_NOT_FOUND"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeValidationError ErrorCode = "VALIDATION_ERROR"

	// Application errors
	ErrCodeDataAccess     ErrorCode = "DATA_ACCESS"
	ErrCodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"

	// Infrastructure errors
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with code and context
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Status  int // HTTP status code
	// Fields carries diagnostic context such as the query name and parameter values
	Fields map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// With attaches a diagnostic field and returns the same error
func (e *AppError) With(key string, value any) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Status:  getHTTPStatus(code),
	}
}

// WrapError wraps an existing error with an error code and message
func WrapError(code ErrorCode, message string, err error) *AppError {
	return NewAppError(code, message, err)
}

// NotFound reports a query or resource name missing from the catalog
func NotFound(name string) *AppError {
	return NewAppError(ErrCodeQueryNotFound, fmt.Sprintf("query '%s' not found", name), nil).With("query", name)
}

// DataAccess wraps a store failure with the query name and parameter values
func DataAccess(queryName string, params map[string]any, err error) *AppError {
	return NewAppError(ErrCodeDataAccess, fmt.Sprintf("query '%s' failed", queryName), err).
		With("query", queryName).
		With("params", params)
}

// SchemaMismatch reports a result shape that does not fit the bound record schema
func SchemaMismatch(queryName string, format string, args ...any) *AppError {
	return NewAppError(ErrCodeSchemaMismatch, fmt.Sprintf(format, args...), nil).With("query", queryName)
}

// getHTTPStatus maps error codes to HTTP status codes
func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound, ErrCodeQueryNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidInput, ErrCodeValidationError:
		return http.StatusBadRequest
	case ErrCodeConnectionFailed:
		return http.StatusServiceUnavailable
	case ErrCodeDataAccess, ErrCodeSchemaMismatch:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCode(err error, codes ...ErrorCode) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if appErr.Code == c {
			return true
		}
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound, ErrCodeQueryNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidationError, ErrCodeInvalidInput)
}

// IsDataAccess checks if the error is a store failure
func IsDataAccess(err error) bool {
	return hasCode(err, ErrCodeDataAccess, ErrCodeConnectionFailed)
}

// IsSchemaMismatch checks if the error signals catalog/schema drift
func IsSchemaMismatch(err error) bool {
	return hasCode(err, ErrCodeSchemaMismatch)
}
