package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trailheadsupply/storefront/api/controllers"
	"github.com/trailheadsupply/storefront/api/middleware"
	"github.com/trailheadsupply/storefront/internal/alert"
	"github.com/trailheadsupply/storefront/internal/checkout"
	"github.com/trailheadsupply/storefront/internal/storage"
	"github.com/trailheadsupply/storefront/pkg/config"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/metrics"
)

// RouterParams carries everything the HTTP surface needs. The registry may
// be nil, in which case /metrics is not mounted.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    storage.Store
	Client   checkout.OrderClient
	Alerter  alert.Alerter
	Metrics  *metrics.CheckoutMetrics
	Registry *prometheus.Registry
}

func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(params.Logger),
		middleware.RequestID(params.Logger),
		middleware.Logging(params.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(params.Config))
		r.Get("/ready", controllers.HealthReady(params.Config, params.Logger, params.Store))
	})

	if params.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/cart/summary", controllers.CartSummary(params.Store, params.Config, params.Logger))
		r.Post("/cart/totals", controllers.CartTotals(params.Store, params.Config, params.Logger))
		r.Post("/checkout", controllers.Checkout(controllers.CheckoutParams{
			Store:   params.Store,
			Client:  params.Client,
			Alerter: params.Alerter,
			Metrics: params.Metrics,
			Config:  params.Config,
			Logger:  params.Logger,
		}))
	})

	return r
}
