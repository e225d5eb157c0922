package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

// OrderRecord is one ledger row joined with its product and seller names.
// A nil name means the reference could not be resolved.
type OrderRecord struct {
	OrderID     int64
	ProductID   int64
	SellerID    int64
	ProductName *string
	SellerName  *string
	Quantity    int64
	TotalPrice  decimal.Decimal
	Status      enums.OrderStatus
	CreatedAt   time.Time
}
