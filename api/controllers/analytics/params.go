package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/sales-analytics/api/validators"
	"github.com/angelmondragon/sales-analytics/internal/analytics"
	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/config"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

const (
	queryStartDate = "start_date"
	queryEndDate   = "end_date"
	queryProductID = "product_id"
	querySellerID  = "seller_id"
	queryTop       = "top"
)

func parseSalesFilter(r *http.Request) (types.SalesFilter, error) {
	var (
		filter types.SalesFilter
		err    error
	)
	if filter.StartDate, err = validators.ParseQueryDate(r, queryStartDate); err != nil {
		return types.SalesFilter{}, err
	}
	if filter.EndDate, err = validators.ParseQueryDate(r, queryEndDate); err != nil {
		return types.SalesFilter{}, err
	}
	if filter.ProductID, err = validators.ParseQueryID(r, queryProductID); err != nil {
		return types.SalesFilter{}, err
	}
	if filter.SellerID, err = validators.ParseQueryID(r, querySellerID); err != nil {
		return types.SalesFilter{}, err
	}
	return filter, nil
}

func parseTop(r *http.Request, cfg config.AnalyticsConfig) (int, error) {
	def, max := topBounds(cfg)
	return validators.ParseQueryInt(r, queryTop, def, 0, max)
}

func topBounds(cfg config.AnalyticsConfig) (def int, max int) {
	max = cfg.MaxTop
	if max <= 0 {
		max = 100
	}
	def = cfg.DefaultTop
	if def <= 0 || def > max {
		def = analytics.DefaultTopN
	}
	return def, max
}

// filterFingerprint renders the filter into a stable cache key component.
// A missing date bound is defaulted from the clock, so only then is the
// current day part of it.
func filterFingerprint(filter types.SalesFilter, top int, now time.Time) string {
	parts := make([]string, 0, 6)
	if filter.StartDate == nil || filter.EndDate == nil {
		parts = append(parts, "day="+now.UTC().Format("2006-01-02"))
	}
	parts = append(parts,
		"start="+formatDate(filter.StartDate),
		"end="+formatDate(filter.EndDate),
		"product="+formatID(filter.ProductID),
		"seller="+formatID(filter.SellerID),
	)
	if top >= 0 {
		parts = append(parts, "top="+strconv.Itoa(top))
	}
	return strings.Join(parts, "|")
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}

func formatID(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}
