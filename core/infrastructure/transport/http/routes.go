package http

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain/interfaces"
	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/handlers"
	httpmiddleware "github.com/wanderdata/wanderdata/core/infrastructure/transport/http/middleware"
	"github.com/wanderdata/wanderdata/core/logger"
	"github.com/wanderdata/wanderdata/core/observability"
)

// RegisterRoutes registers all HTTP routes. Every resource answers with and
// without a trailing slash.
func RegisterRoutes(
	r *chi.Mux,
	service interfaces.AnalyticsService,
	c *catalog.Catalog,
	metrics *observability.Metrics,
	baseURL string,
) error {
	log := logger.New("routes")
	log.Infof("Registering HTTP routes")

	specJSON, err := handlers.GenerateOpenAPISpec(c, baseURL)
	if err != nil {
		return fmt.Errorf("generate api docs: %w", err)
	}

	h := newResourceHandler(service)
	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	var utilityRoutes []string
	var resourceRoutes []string

	r.Get("/", h.handleHealth)
	utilityRoutes = append(utilityRoutes, "GET /")

	r.Get("/docs", handlers.OpenAPIHandler(specJSON))
	utilityRoutes = append(utilityRoutes, "GET /docs")

	if metrics != nil {
		r.Method("GET", "/metrics", metrics.Handler())
		utilityRoutes = append(utilityRoutes, "GET /metrics")
	}

	r.Route("/v0", func(r chi.Router) {
		r.Use(httpmiddleware.ValidateQueryParams(fmt.Sprintf("max=%d", httpmiddleware.MaxParamLength)))

		r.Get("/counts", h.handleCounts)
		r.Get("/counts/", h.handleCounts)
		resourceRoutes = append(resourceRoutes, "GET /v0/counts/")

		for _, def := range c.Resources() {
			handler := h.handleList(def.Name)
			r.Get("/"+def.Name, handler)
			r.Get("/"+def.Name+"/", handler)
			resourceRoutes = append(resourceRoutes, "GET /v0/"+def.Name+"/")
		}
	})

	log.Infof("Routes registered: %d utility, %d resource", len(utilityRoutes), len(resourceRoutes))
	log.Debugf("Utility routes:")
	for _, route := range utilityRoutes {
		log.Debugf("  %s", route)
	}
	log.Debugf("Resource routes:")
	for _, route := range resourceRoutes {
		log.Debugf("  %s", route)
	}
	return nil
}
