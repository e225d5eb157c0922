package enums

import "fmt"

// AnalyticsView names one of the independently computed sales reports.
type AnalyticsView string

const (
	AnalyticsViewOverview     AnalyticsView = "overview"
	AnalyticsViewDailyTrend   AnalyticsView = "daily_trend"
	AnalyticsViewMonthlyTrend AnalyticsView = "monthly_trend"
	AnalyticsViewTopProducts  AnalyticsView = "top_products"
	AnalyticsViewTopSellers   AnalyticsView = "top_sellers"
)

var validAnalyticsViews = []AnalyticsView{
	AnalyticsViewOverview,
	AnalyticsViewDailyTrend,
	AnalyticsViewMonthlyTrend,
	AnalyticsViewTopProducts,
	AnalyticsViewTopSellers,
}

// String implements fmt.Stringer.
func (v AnalyticsView) String() string {
	return string(v)
}

// IsValid reports whether the value is a known AnalyticsView.
func (v AnalyticsView) IsValid() bool {
	for _, candidate := range validAnalyticsViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// IsTrend reports whether the view is a gap-filled time series.
func (v AnalyticsView) IsTrend() bool {
	return v == AnalyticsViewDailyTrend || v == AnalyticsViewMonthlyTrend
}

// ParseAnalyticsView converts raw input into an AnalyticsView.
func ParseAnalyticsView(value string) (AnalyticsView, error) {
	for _, candidate := range validAnalyticsViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics view %q", value)
}
