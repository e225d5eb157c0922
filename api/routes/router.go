package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/sales-analytics/api/controllers"
	analyticscontrollers "github.com/angelmondragon/sales-analytics/api/controllers/analytics"
	"github.com/angelmondragon/sales-analytics/api/middleware"
	"github.com/angelmondragon/sales-analytics/internal/analytics"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"github.com/angelmondragon/sales-analytics/pkg/redis"
)

// Params collects the dependencies of the HTTP surface. ReportCache,
// RateLimiter and Gatherer are optional.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Analytics   analytics.Service
	ReportCache redis.ReportCache
	RateLimiter redis.RateLimiter
	Gatherer    prometheus.Gatherer
	Readiness   []controllers.Dependency
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Readiness...))
	})

	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	analyticsPolicy := middleware.NewRateLimitPolicy(
		"analytics",
		cfg.Analytics.RateLimitWindow,
		cfg.Analytics.RateLimitPerIP,
	)
	deps := analyticscontrollers.Deps{
		Service: p.Analytics,
		Cache:   p.ReportCache,
		Config:  cfg.Analytics,
		Logger:  logg,
	}

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(middleware.RateLimit(analyticsPolicy, p.RateLimiter, logg))

		r.Get("/overview", analyticscontrollers.Overview(deps))
		r.Get("/trend/daily", analyticscontrollers.DailyTrend(deps))
		r.Get("/trend/monthly", analyticscontrollers.MonthlyTrend(deps))
		r.Get("/top/products", analyticscontrollers.TopProducts(deps))
		r.Get("/top/sellers", analyticscontrollers.TopSellers(deps))
		r.Get("/dashboard", analyticscontrollers.Dashboard(deps))
	})

	return r
}
