package types

import (
	"time"

	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

// SalesFilter is the caller-supplied, partially specified report filter.
// Absent dates mean unbounded; absent ids mean no restriction.
type SalesFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProductID *int64
	SellerID  *int64
}

// Granularity selects the calendar unit of a trend.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// Predicate is the resolved ledger query. CreatedFrom is inclusive and
// CreatedBefore exclusive; nil bounds are open.
type Predicate struct {
	Status        enums.OrderStatus
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	ProductID     *int64
	SellerID      *int64
}

// Matches applies the predicate to a single record.
func (p Predicate) Matches(order OrderRecord) bool {
	if order.Status != p.Status {
		return false
	}
	created := order.CreatedAt.UTC()
	if p.CreatedFrom != nil && created.Before(*p.CreatedFrom) {
		return false
	}
	if p.CreatedBefore != nil && !created.Before(*p.CreatedBefore) {
		return false
	}
	if p.ProductID != nil && order.ProductID != *p.ProductID {
		return false
	}
	if p.SellerID != nil && order.SellerID != *p.SellerID {
		return false
	}
	return true
}

// Window is the inclusive calendar range of a trend. For monthly trends both
// bounds sit on the first day of their month.
type Window struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}
