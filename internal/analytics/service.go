package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/sales-analytics/pkg/errors"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"github.com/angelmondragon/sales-analytics/pkg/metrics"
)

// Ledger is the read-only query surface over completed orders.
type Ledger interface {
	Orders(ctx context.Context, pred types.Predicate) ([]types.OrderRecord, error)
}

// Service computes the sales reports. Every view fetches from the ledger once.
type Service interface {
	Overview(ctx context.Context, filter types.SalesFilter) (*types.SalesOverview, error)
	DailyTrend(ctx context.Context, filter types.SalesFilter) ([]types.SalesTrendPoint, error)
	MonthlyTrend(ctx context.Context, filter types.SalesFilter) ([]types.SalesTrendPoint, error)
	TopProducts(ctx context.Context, filter types.SalesFilter, top int) ([]types.ProductRank, error)
	TopSellers(ctx context.Context, filter types.SalesFilter, top int) ([]types.SellerRank, error)
	// Dashboard computes every view concurrently for the same filter.
	Dashboard(ctx context.Context, filter types.SalesFilter, top int) (*types.Dashboard, error)
}

type ServiceParams struct {
	Ledger  Ledger
	Policy  WindowPolicy
	Metrics *metrics.ViewMetrics
	Logger  *logger.Logger
}

type service struct {
	ledger     Ledger
	normalizer *Normalizer
	metrics    *metrics.ViewMetrics
	logg       *logger.Logger
}

// NewService wires the report computations to an order ledger.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, fmt.Errorf("order ledger required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		ledger:     params.Ledger,
		normalizer: NewNormalizer(params.Policy),
		metrics:    params.Metrics,
		logg:       logg,
	}, nil
}

func (s *service) Overview(ctx context.Context, filter types.SalesFilter) (*types.SalesOverview, error) {
	orders, err := s.fetch(ctx, enums.AnalyticsViewOverview, s.normalizer.Predicate(filter))
	if err != nil {
		return nil, err
	}
	overview := ComputeOverview(orders)
	return &overview, nil
}

func (s *service) DailyTrend(ctx context.Context, filter types.SalesFilter) ([]types.SalesTrendPoint, error) {
	pred, window := s.normalizer.DailyWindow(filter)
	orders, err := s.fetch(ctx, enums.AnalyticsViewDailyTrend, pred)
	if err != nil {
		return nil, err
	}
	return ComputeTrend(orders, window), nil
}

func (s *service) MonthlyTrend(ctx context.Context, filter types.SalesFilter) ([]types.SalesTrendPoint, error) {
	pred, window := s.normalizer.MonthlyWindow(filter)
	orders, err := s.fetch(ctx, enums.AnalyticsViewMonthlyTrend, pred)
	if err != nil {
		return nil, err
	}
	return ComputeTrend(orders, window), nil
}

func (s *service) TopProducts(ctx context.Context, filter types.SalesFilter, top int) ([]types.ProductRank, error) {
	orders, err := s.fetch(ctx, enums.AnalyticsViewTopProducts, s.normalizer.Predicate(filter))
	if err != nil {
		return nil, err
	}
	return ComputeTopProducts(orders, top), nil
}

func (s *service) TopSellers(ctx context.Context, filter types.SalesFilter, top int) ([]types.SellerRank, error) {
	orders, err := s.fetch(ctx, enums.AnalyticsViewTopSellers, s.normalizer.Predicate(filter))
	if err != nil {
		return nil, err
	}
	return ComputeTopSellers(orders, top), nil
}

func (s *service) Dashboard(ctx context.Context, filter types.SalesFilter, top int) (*types.Dashboard, error) {
	var dashboard types.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview, err := s.Overview(gctx, filter)
		if err != nil {
			return err
		}
		dashboard.Overview = *overview
		return nil
	})
	g.Go(func() error {
		points, err := s.DailyTrend(gctx, filter)
		dashboard.DailyTrend = points
		return err
	})
	g.Go(func() error {
		points, err := s.MonthlyTrend(gctx, filter)
		dashboard.MonthlyTrend = points
		return err
	})
	g.Go(func() error {
		ranks, err := s.TopProducts(gctx, filter, top)
		dashboard.TopProducts = ranks
		return err
	})
	g.Go(func() error {
		ranks, err := s.TopSellers(gctx, filter, top)
		dashboard.TopSellers = ranks
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// fetch runs the single ledger query of a view and records its outcome.
func (s *service) fetch(ctx context.Context, view enums.AnalyticsView, pred types.Predicate) ([]types.OrderRecord, error) {
	started := time.Now()
	ctx = s.logg.WithView(ctx, view.String())

	orders, err := s.ledger.Orders(ctx, pred)
	s.metrics.ObserveDuration(view.String(), time.Since(started))
	if err != nil {
		s.metrics.IncFailure(view.String())
		if typed := pkgerrors.As(err); typed != nil {
			s.logg.Error(ctx, "analytics.view.failed", err)
			return nil, err
		}
		wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order ledger query failed")
		ctx = s.logg.WithFields(ctx, pkgerrors.Dump(wrapped).Fields())
		s.logg.Error(ctx, "analytics.view.failed", err)
		return nil, wrapped
	}

	s.metrics.IncSuccess(view.String())
	s.metrics.ObserveOrders(view.String(), len(orders))
	ctx = s.logg.WithFields(ctx, map[string]any{
		"orders":      len(orders),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	s.logg.Debug(ctx, "analytics.view.computed")
	return orders, nil
}
