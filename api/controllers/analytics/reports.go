package analytics

import (
	"context"
	"net/http"

	"github.com/angelmondragon/sales-analytics/api/responses"
	"github.com/angelmondragon/sales-analytics/internal/analytics"
	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"github.com/angelmondragon/sales-analytics/pkg/redis"
)

const dashboardView = "dashboard"

// Deps carries what the report handlers need. Cache is optional.
type Deps struct {
	Service analytics.Service
	Cache   redis.ReportCache
	Config  config.AnalyticsConfig
	Logger  *logger.Logger
}

func (d Deps) logger() *logger.Logger {
	if d.Logger == nil {
		return logger.Nop()
	}
	return d.Logger
}

func (d Deps) cacheEnabled() bool {
	return d.Cache != nil && d.Config.CacheTTL > 0
}

func Overview(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseSalesFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, enums.AnalyticsViewOverview.String(), filter, -1, func(ctx context.Context) (any, error) {
			return deps.Service.Overview(ctx, filter)
		})
	}
}

func DailyTrend(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseSalesFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, enums.AnalyticsViewDailyTrend.String(), filter, -1, func(ctx context.Context) (any, error) {
			return deps.Service.DailyTrend(ctx, filter)
		})
	}
}

func MonthlyTrend(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseSalesFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, enums.AnalyticsViewMonthlyTrend.String(), filter, -1, func(ctx context.Context) (any, error) {
			return deps.Service.MonthlyTrend(ctx, filter)
		})
	}
}

func TopProducts(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, top, err := parseRankingRequest(r, deps)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, enums.AnalyticsViewTopProducts.String(), filter, top, func(ctx context.Context) (any, error) {
			return deps.Service.TopProducts(ctx, filter, top)
		})
	}
}

func TopSellers(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, top, err := parseRankingRequest(r, deps)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, enums.AnalyticsViewTopSellers.String(), filter, top, func(ctx context.Context) (any, error) {
			return deps.Service.TopSellers(ctx, filter, top)
		})
	}
}

// Dashboard returns every report for one filter in a single response.
func Dashboard(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, top, err := parseRankingRequest(r, deps)
		if err != nil {
			responses.WriteError(r.Context(), deps.logger(), w, err)
			return
		}
		serveReport(w, r, deps, dashboardView, filter, top, func(ctx context.Context) (any, error) {
			return deps.Service.Dashboard(ctx, filter, top)
		})
	}
}

func parseRankingRequest(r *http.Request, deps Deps) (types.SalesFilter, int, error) {
	filter, err := parseSalesFilter(r)
	if err != nil {
		return filter, 0, err
	}
	top, err := parseTop(r, deps.Config)
	if err != nil {
		return filter, 0, err
	}
	return filter, top, nil
}
