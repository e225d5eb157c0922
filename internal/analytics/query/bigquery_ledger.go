package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cloudbigquery "cloud.google.com/go/bigquery"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/bigquery"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

const bigQueryOrdersSQL = `
SELECT
  order_id,
  product_id,
  seller_id,
  product_name,
  seller_name,
  quantity,
  CAST(total_price AS STRING) AS total_price,
  status,
  created_at
FROM %s
WHERE %s
ORDER BY created_at ASC, order_id ASC
`

// Querier runs parameterized SQL against the warehouse.
type Querier interface {
	Query(ctx context.Context, sql string, params []cloudbigquery.QueryParameter) (bigquery.RowIterator, error)
}

type bigQueryOrderRow struct {
	OrderID     int64                    `bigquery:"order_id"`
	ProductID   int64                    `bigquery:"product_id"`
	SellerID    cloudbigquery.NullInt64  `bigquery:"seller_id"`
	ProductName cloudbigquery.NullString `bigquery:"product_name"`
	SellerName  cloudbigquery.NullString `bigquery:"seller_name"`
	Quantity    int64                    `bigquery:"quantity"`
	TotalPrice  string                   `bigquery:"total_price"`
	Status      string                   `bigquery:"status"`
	CreatedAt   time.Time                `bigquery:"created_at"`
}

// BigQueryLedger reads orders from a flattened warehouse table that already
// carries product and seller names.
type BigQueryLedger struct {
	client   Querier
	tableRef string
}

// NewBigQueryLedger builds a ledger over the given fully qualified table.
func NewBigQueryLedger(client Querier, tableRef string) (*BigQueryLedger, error) {
	if client == nil {
		return nil, fmt.Errorf("bigquery client required")
	}
	if strings.TrimSpace(tableRef) == "" {
		return nil, fmt.Errorf("orders table required")
	}
	return &BigQueryLedger{client: client, tableRef: tableRef}, nil
}

func (l *BigQueryLedger) Orders(ctx context.Context, pred types.Predicate) ([]types.OrderRecord, error) {
	sql, params := buildBigQueryOrders(l.tableRef, pred)
	iter, err := l.client.Query(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	var records []types.OrderRecord
	for {
		var row bigQueryOrderRow
		if err := iter.Next(&row); err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("reading order row: %w", err)
		}
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func buildBigQueryOrders(tableRef string, pred types.Predicate) (string, []cloudbigquery.QueryParameter) {
	clauses := []string{"status = @status"}
	params := []cloudbigquery.QueryParameter{{Name: "status", Value: string(pred.Status)}}

	if pred.CreatedFrom != nil {
		clauses = append(clauses, "created_at >= @created_from")
		params = append(params, cloudbigquery.QueryParameter{Name: "created_from", Value: pred.CreatedFrom.UTC()})
	}
	if pred.CreatedBefore != nil {
		clauses = append(clauses, "created_at < @created_before")
		params = append(params, cloudbigquery.QueryParameter{Name: "created_before", Value: pred.CreatedBefore.UTC()})
	}
	if pred.ProductID != nil {
		clauses = append(clauses, "product_id = @product_id")
		params = append(params, cloudbigquery.QueryParameter{Name: "product_id", Value: *pred.ProductID})
	}
	if pred.SellerID != nil {
		clauses = append(clauses, "IFNULL(seller_id, 0) = @seller_id")
		params = append(params, cloudbigquery.QueryParameter{Name: "seller_id", Value: *pred.SellerID})
	}

	return fmt.Sprintf(bigQueryOrdersSQL, tableRef, strings.Join(clauses, "\n  AND ")), params
}

func (r bigQueryOrderRow) toRecord() (types.OrderRecord, error) {
	total, err := decimal.NewFromString(r.TotalPrice)
	if err != nil {
		return types.OrderRecord{}, fmt.Errorf("parsing total_price of order %d: %w", r.OrderID, err)
	}
	record := types.OrderRecord{
		OrderID:    r.OrderID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		TotalPrice: total,
		Status:     enums.OrderStatus(r.Status),
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if r.SellerID.Valid {
		record.SellerID = r.SellerID.Int64
	}
	if r.ProductName.Valid {
		name := r.ProductName.StringVal
		record.ProductName = &name
	}
	if r.SellerName.Valid {
		name := r.SellerName.StringVal
		record.SellerName = &name
	}
	return record, nil
}
