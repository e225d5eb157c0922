package query

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

const sqlLedgerColumns = `o.id AS order_id,
  o.product_id AS product_id,
  COALESCE(p.seller_id, 0) AS seller_id,
  p.name AS product_name,
  s.name AS seller_name,
  o.quantity AS quantity,
  o.total_price AS total_price,
  o.status AS status,
  o.created_at AS created_at`

type sqlOrderRow struct {
	OrderID     int64           `gorm:"column:order_id"`
	ProductID   int64           `gorm:"column:product_id"`
	SellerID    int64           `gorm:"column:seller_id"`
	ProductName *string         `gorm:"column:product_name"`
	SellerName  *string         `gorm:"column:seller_name"`
	Quantity    int64           `gorm:"column:quantity"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price"`
	Status      string          `gorm:"column:status"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

// SQLLedger reads orders from the relational store, joining product and
// seller names. Missing references come back as nil names and seller id 0.
type SQLLedger struct {
	db *gorm.DB
}

// NewSQLLedger binds the ledger to a GORM connection.
func NewSQLLedger(db *gorm.DB) (*SQLLedger, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	return &SQLLedger{db: db}, nil
}

func (l *SQLLedger) Orders(ctx context.Context, pred types.Predicate) ([]types.OrderRecord, error) {
	query := l.db.WithContext(ctx).
		Table("orders AS o").
		Select(sqlLedgerColumns).
		Joins("LEFT JOIN products AS p ON p.id = o.product_id").
		Joins("LEFT JOIN sellers AS s ON s.id = p.seller_id").
		Where("o.status = ?", string(pred.Status))

	if pred.CreatedFrom != nil {
		query = query.Where("o.created_at >= ?", pred.CreatedFrom.UTC())
	}
	if pred.CreatedBefore != nil {
		query = query.Where("o.created_at < ?", pred.CreatedBefore.UTC())
	}
	if pred.ProductID != nil {
		query = query.Where("o.product_id = ?", *pred.ProductID)
	}
	if pred.SellerID != nil {
		query = query.Where("COALESCE(p.seller_id, 0) = ?", *pred.SellerID)
	}

	var rows []sqlOrderRow
	if err := query.Order("o.created_at ASC").Order("o.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	records := make([]types.OrderRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.OrderRecord{
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			SellerID:    row.SellerID,
			ProductName: row.ProductName,
			SellerName:  row.SellerName,
			Quantity:    row.Quantity,
			TotalPrice:  row.TotalPrice,
			Status:      enums.OrderStatus(row.Status),
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return records, nil
}
