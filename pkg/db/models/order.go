package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

// Order is a single purchase of one product. Only completed orders count as sales.
type Order struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64             `gorm:"column:product_id;not null;index"`
	BuyerID    int64             `gorm:"column:buyer_id;not null;default:0"`
	Quantity   int64             `gorm:"column:quantity;not null"`
	TotalPrice decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;index"`
	CreatedAt  time.Time         `gorm:"column:created_at;not null;index"`
}

func (Order) TableName() string { return "orders" }

// All lists every model owned by the ledger schema, in dependency order.
func All() []any {
	return []any{&Seller{}, &Product{}, &Order{}}
}
