package analytics

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/sales-analytics/api/responses"
	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

// Warmer fills the report cache with the unfiltered reports, keyed exactly as
// the handlers look them up for a request without query parameters.
type Warmer struct {
	deps Deps
}

func NewWarmer(deps Deps) (*Warmer, error) {
	if deps.Service == nil {
		return nil, errors.New("analytics service required")
	}
	if !deps.cacheEnabled() {
		return nil, errors.New("report cache with a positive ttl required")
	}
	return &Warmer{deps: deps}, nil
}

type warmTarget struct {
	view    string
	top     int
	compute computeFunc
}

// WarmReports computes every view and stores it. A failing view does not stop
// the others; the errors are combined.
func (w *Warmer) WarmReports(ctx context.Context) (int, error) {
	var (
		filter types.SalesFilter
		warmed int
		errs   error
	)
	svc := w.deps.Service
	top, _ := topBounds(w.deps.Config)
	now := timeNowUTC()

	targets := []warmTarget{
		{enums.AnalyticsViewOverview.String(), -1, func(ctx context.Context) (any, error) { return svc.Overview(ctx, filter) }},
		{enums.AnalyticsViewDailyTrend.String(), -1, func(ctx context.Context) (any, error) { return svc.DailyTrend(ctx, filter) }},
		{enums.AnalyticsViewMonthlyTrend.String(), -1, func(ctx context.Context) (any, error) { return svc.MonthlyTrend(ctx, filter) }},
		{enums.AnalyticsViewTopProducts.String(), top, func(ctx context.Context) (any, error) { return svc.TopProducts(ctx, filter, top) }},
		{enums.AnalyticsViewTopSellers.String(), top, func(ctx context.Context) (any, error) { return svc.TopSellers(ctx, filter, top) }},
		{dashboardView, top, func(ctx context.Context) (any, error) { return svc.Dashboard(ctx, filter, top) }},
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return warmed, multierr.Append(errs, err)
		}
		data, err := target.compute(ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", target.view, err))
			continue
		}
		body, err := responses.EncodeSuccess(data)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: encode: %w", target.view, err))
			continue
		}
		key := w.deps.Cache.ReportKey(target.view, filterFingerprint(filter, target.top, now))
		if err := w.deps.Cache.SetReport(ctx, key, body, w.deps.Config.CacheTTL); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: store: %w", target.view, err))
			continue
		}
		warmed++
	}
	return warmed, errs
}
