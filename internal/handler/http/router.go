package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petdailykit/catalog/internal/service"
	"github.com/petdailykit/catalog/pkg/health"
	"github.com/petdailykit/catalog/pkg/middleware"
)

// RouterConfig carries the router's environment-dependent knobs.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	RequestTimeout time.Duration
	PprofEnabled   bool
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	productHandler := NewProductHandler(catalogService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	// Product CRUD endpoints
	r.Route("/shop", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	// Aggregated view endpoints
	r.Route("/api/shop", func(r chi.Router) {
		r.Get("/title/{title}", catalogHandler.GetAggregateByTitle)
		r.Get("/{id}/details", catalogHandler.GetProductDetails)
	})

	return r
}
