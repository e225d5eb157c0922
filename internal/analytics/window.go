package analytics

import (
	"time"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

const (
	defaultDailyDefaultDays     = 30
	defaultDailyMaxDays         = 90
	defaultMonthlyDefaultMonths = 12
	defaultMonthlyMaxDays       = 730
	defaultMonthlyClampMonths   = 24
)

// WindowPolicy holds the business thresholds used to default and clamp trend windows.
type WindowPolicy struct {
	DailyDefaultDays     int
	DailyMaxDays         int
	MonthlyDefaultMonths int
	MonthlyMaxDays       int
	MonthlyClampMonths   int
}

// DefaultWindowPolicy returns the stock 30/90 day and 12/24 month policy.
func DefaultWindowPolicy() WindowPolicy {
	return WindowPolicy{
		DailyDefaultDays:     defaultDailyDefaultDays,
		DailyMaxDays:         defaultDailyMaxDays,
		MonthlyDefaultMonths: defaultMonthlyDefaultMonths,
		MonthlyMaxDays:       defaultMonthlyMaxDays,
		MonthlyClampMonths:   defaultMonthlyClampMonths,
	}
}

// WindowPolicyFromConfig maps the analytics config section onto a policy.
func WindowPolicyFromConfig(cfg config.AnalyticsConfig) WindowPolicy {
	return WindowPolicy{
		DailyDefaultDays:     cfg.DailyDefaultDays,
		DailyMaxDays:         cfg.DailyMaxDays,
		MonthlyDefaultMonths: cfg.MonthlyDefaultMonths,
		MonthlyMaxDays:       cfg.MonthlyMaxDays,
		MonthlyClampMonths:   cfg.MonthlyClampMonths,
	}.withDefaults()
}

func (p WindowPolicy) withDefaults() WindowPolicy {
	def := DefaultWindowPolicy()
	if p.DailyDefaultDays <= 0 {
		p.DailyDefaultDays = def.DailyDefaultDays
	}
	if p.DailyMaxDays <= 0 {
		p.DailyMaxDays = def.DailyMaxDays
	}
	if p.MonthlyDefaultMonths <= 0 {
		p.MonthlyDefaultMonths = def.MonthlyDefaultMonths
	}
	if p.MonthlyMaxDays <= 0 {
		p.MonthlyMaxDays = def.MonthlyMaxDays
	}
	if p.MonthlyClampMonths <= 0 {
		p.MonthlyClampMonths = def.MonthlyClampMonths
	}
	return p
}

// Normalizer resolves partially specified filters into ledger predicates and trend windows.
type Normalizer struct {
	policy WindowPolicy
	now    func() time.Time
}

// NewNormalizer builds a normalizer; zero policy fields fall back to the defaults.
func NewNormalizer(policy WindowPolicy) *Normalizer {
	return &Normalizer{policy: policy.withDefaults(), now: timeNowUTC}
}

// Policy returns the effective thresholds.
func (n *Normalizer) Policy() WindowPolicy {
	return n.policy
}

// Predicate resolves the filter for overview and ranking views. Dates are not
// defaulted; an end date covers its whole calendar day.
func (n *Normalizer) Predicate(filter types.SalesFilter) types.Predicate {
	pred := basePredicate(filter)
	if filter.StartDate != nil {
		from := DayStart(*filter.StartDate)
		pred.CreatedFrom = &from
	}
	if filter.EndDate != nil {
		before := DayStart(*filter.EndDate).AddDate(0, 0, 1)
		pred.CreatedBefore = &before
	}
	return pred
}

// DailyWindow resolves the daily trend window and its predicate.
func (n *Normalizer) DailyWindow(filter types.SalesFilter) (types.Predicate, types.Window) {
	end := n.resolveEnd(filter)
	var start time.Time
	if filter.StartDate != nil {
		start = DayStart(*filter.StartDate)
	} else {
		start = end.AddDate(0, 0, -n.policy.DailyDefaultDays)
	}
	if daysBetween(start, end) > n.policy.DailyMaxDays {
		start = end.AddDate(0, 0, -n.policy.DailyMaxDays)
	}

	window := types.Window{Start: start, End: end, Granularity: types.GranularityDaily}
	return n.windowPredicate(filter, start), window
}

// MonthlyWindow resolves the monthly trend window and its predicate. The
// window bounds are month starts while the predicate keeps the exact start
// and end days, so a start mid-month (explicit, defaulted or clamped) yields a
// partial first month.
func (n *Normalizer) MonthlyWindow(filter types.SalesFilter) (types.Predicate, types.Window) {
	end := n.resolveEnd(filter)
	var start time.Time
	if filter.StartDate != nil {
		start = DayStart(*filter.StartDate)
	} else {
		start = end.AddDate(0, -n.policy.MonthlyDefaultMonths, 0)
	}
	if daysBetween(start, end) > n.policy.MonthlyMaxDays {
		start = end.AddDate(0, -n.policy.MonthlyClampMonths, 0)
	}

	window := types.Window{Start: MonthStart(start), End: MonthStart(end), Granularity: types.GranularityMonthly}
	if start.After(end) {
		// inverted filters keep their raw bounds so nothing is enumerated or fetched
		window.Start, window.End = start, end
	}
	return n.windowPredicate(filter, start), window
}

// resolveEnd returns the start of the inclusive end day.
func (n *Normalizer) resolveEnd(filter types.SalesFilter) time.Time {
	if filter.EndDate != nil {
		return DayStart(*filter.EndDate)
	}
	return DayStart(n.now())
}

func (n *Normalizer) windowPredicate(filter types.SalesFilter, from time.Time) types.Predicate {
	pred := basePredicate(filter)
	before := n.resolveEnd(filter).AddDate(0, 0, 1)
	pred.CreatedFrom = &from
	pred.CreatedBefore = &before
	return pred
}

func basePredicate(filter types.SalesFilter) types.Predicate {
	pred := types.Predicate{Status: enums.OrderStatusCompleted}
	if filter.ProductID != nil {
		id := *filter.ProductID
		pred.ProductID = &id
	}
	if filter.SellerID != nil {
		id := *filter.SellerID
		pred.SellerID = &id
	}
	return pred
}
