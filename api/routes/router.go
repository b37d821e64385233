package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderpulse/backend/api/controllers"
	analyticscontrollers "github.com/orderpulse/backend/api/controllers/analytics"
	"github.com/orderpulse/backend/api/middleware"
	"github.com/orderpulse/backend/internal/analytics"
	"github.com/orderpulse/backend/pkg/config"
	"github.com/orderpulse/backend/pkg/logger"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Cache     controllers.Pinger
	Analytics analytics.Service
	Registry  *prometheus.Registry
}

// NewRouter assembles the chi router: health probes, the Prometheus
// endpoint, and the versioned analytics API.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Cache))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/kpis", analyticscontrollers.KPIs(p.Analytics, p.Logger))
		r.Get("/sales-trend", analyticscontrollers.SalesTrend(p.Analytics, p.Logger))
		r.Get("/sales-forecast", analyticscontrollers.SalesForecast(p.Analytics, p.Logger))
		r.Get("/order-status-distribution", analyticscontrollers.StatusDistribution(p.Analytics, p.Logger))
		r.Get("/inventory-health", analyticscontrollers.InventoryHealth(p.Analytics, p.Logger))
		r.Get("/product-performance", analyticscontrollers.ProductPerformance(p.Analytics, p.Logger))
		r.Get("/inventory-needs-forecast", analyticscontrollers.InventoryNeedsForecast(p.Analytics, p.Logger))
		r.Get("/catalog-suggestions", analyticscontrollers.CatalogSuggestions(p.Analytics, p.Logger))
		r.Get("/dashboard", analyticscontrollers.Dashboard(p.Analytics, p.Logger))
	})

	return r
}
