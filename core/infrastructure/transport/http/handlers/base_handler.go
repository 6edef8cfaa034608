package handlers

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/dto"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(tag string) *BaseHandler {
	return &BaseHandler{
		logger: logger.New(tag),
	}
}

// Logger returns the handler's tagged logger
func (h *BaseHandler) Logger() logger.Logger {
	return h.logger
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Errorf("Failed to encode JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"code":"INTERNAL_ERROR","error":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// WriteError writes an error response. Store and schema failures are logged
// at error level with their diagnostic fields; the body never carries SQL.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewAppError(errors.ErrCodeInternalError, "internal server error", err)
	}

	switch appErr.Code {
	case errors.ErrCodeDataAccess, errors.ErrCodeConnectionFailed,
		errors.ErrCodeSchemaMismatch, errors.ErrCodeInternalError:
		h.logger.With(appErr.Fields).PrintError(string(appErr.Code), err)
	default:
		h.logger.Debugf("Request failed: %v", err)
	}

	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.WriteJSON(w, status, dto.ErrorResponse{
		Success: false,
		Code:    string(appErr.Code),
		Error:   appErr.Message,
	})
}

// WriteSuccess writes a success response
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, data any) {
	h.WriteJSON(w, http.StatusOK, data)
}
