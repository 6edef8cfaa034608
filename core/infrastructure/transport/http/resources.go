package http

import (
	"net/http"

	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/dto"
	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/handlers"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// HealthMessage is the body of the root health check
const HealthMessage = "API health check successful"

type resourceHandler struct {
	*handlers.BaseHandler
	service interfaces.AnalyticsService
}

func newResourceHandler(service interfaces.AnalyticsService) *resourceHandler {
	return &resourceHandler{
		BaseHandler: handlers.NewBaseHandler("handler"),
		service:     service,
	}
}

func (h *resourceHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.WriteSuccess(w, dto.HealthResponse{Message: HealthMessage})
}

// handleList serves one catalog resource. Query-string parameters are
// forwarded as is; the catalog drops the ones the query does not declare.
func (h *resourceHandler) handleList(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := make(map[string]string)
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		records, err := h.service.List(r.Context(), name, params)
		if err != nil {
			h.WriteError(w, err)
			return
		}
		h.WriteSuccess(w, records)
	}
}

func (h *resourceHandler) handleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteSuccess(w, counts)
}

func (h *resourceHandler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, errors.NewAppError(errors.ErrCodeNotFound, "no resource at "+r.URL.Path, nil))
}

func (h *resourceHandler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	appErr := errors.NewAppError(errors.ErrCodeInvalidInput, "method "+r.Method+" not allowed", nil)
	appErr.Status = http.StatusMethodNotAllowed
	h.WriteError(w, appErr)
}
