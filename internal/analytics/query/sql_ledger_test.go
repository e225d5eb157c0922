package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/sales-analytics/internal/analytics/types"
	"github.com/angelmondragon/sales-analytics/pkg/db/models"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func seedLedger(t *testing.T, db *gorm.DB) {
	t.Helper()
	sellers := []models.Seller{
		{ID: 1, Name: strPtr("Acme")},
		{ID: 2, Name: nil},
	}
	products := []models.Product{
		{ID: 10, SellerID: 1, Name: strPtr("Widget")},
		{ID: 20, SellerID: 2, Name: strPtr("Gadget")},
		{ID: 30, SellerID: 0, Name: strPtr("House brand")},
		{ID: 40, SellerID: 9, Name: nil},
	}
	orders := []models.Order{
		{ID: 1, ProductID: 10, Quantity: 2, TotalPrice: decimal.RequireFromString("30"), Status: enums.OrderStatusCompleted, CreatedAt: day(2024, 6, 1)},
		{ID: 2, ProductID: 20, Quantity: 1, TotalPrice: decimal.RequireFromString("12.5"), Status: enums.OrderStatusCompleted, CreatedAt: day(2024, 6, 30).Add(23*time.Hour + 59*time.Minute)},
		{ID: 3, ProductID: 30, Quantity: 4, TotalPrice: decimal.RequireFromString("70"), Status: enums.OrderStatusCompleted, CreatedAt: day(2024, 7, 1)},
		{ID: 4, ProductID: 10, Quantity: 1, TotalPrice: decimal.RequireFromString("99"), Status: enums.OrderStatusPendingShipment, CreatedAt: day(2024, 6, 15)},
		{ID: 5, ProductID: 99, Quantity: 1, TotalPrice: decimal.RequireFromString("5"), Status: enums.OrderStatusCompleted, CreatedAt: day(2024, 6, 10)},
		{ID: 6, ProductID: 40, Quantity: 3, TotalPrice: decimal.RequireFromString("8"), Status: enums.OrderStatusCompleted, CreatedAt: day(2024, 6, 11)},
	}
	require.NoError(t, db.Create(&sellers).Error)
	require.NoError(t, db.Create(&products).Error)
	require.NoError(t, db.Create(&orders).Error)
}

func completed() types.Predicate {
	return types.Predicate{Status: enums.OrderStatusCompleted}
}

func orderIDs(records []types.OrderRecord) []int64 {
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.OrderID)
	}
	return ids
}

func TestSQLLedgerReturnsCompletedOrdersOnly(t *testing.T) {
	db := newLedgerDB(t)
	seedLedger(t, db)
	ledger, err := NewSQLLedger(db)
	require.NoError(t, err)

	records, err := ledger.Orders(context.Background(), completed())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 5, 6, 2, 3}, orderIDs(records))
	for _, record := range records {
		assert.Equal(t, enums.OrderStatusCompleted, record.Status)
	}
}

func TestSQLLedgerResolvesNames(t *testing.T) {
	db := newLedgerDB(t)
	seedLedger(t, db)
	ledger, err := NewSQLLedger(db)
	require.NoError(t, err)

	records, err := ledger.Orders(context.Background(), completed())
	require.NoError(t, err)
	byID := map[int64]types.OrderRecord{}
	for _, record := range records {
		byID[record.OrderID] = record
	}

	widget := byID[1]
	require.NotNil(t, widget.ProductName)
	require.NotNil(t, widget.SellerName)
	assert.Equal(t, "Widget", *widget.ProductName)
	assert.Equal(t, "Acme", *widget.SellerName)
	assert.Equal(t, int64(1), widget.SellerID)
	assert.True(t, widget.TotalPrice.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(2), widget.Quantity)

	gadget := byID[2]
	assert.Equal(t, int64(2), gadget.SellerID)
	assert.Nil(t, gadget.SellerName)
	assert.True(t, gadget.TotalPrice.Equal(decimal.RequireFromString("12.5")))

	house := byID[3]
	assert.Equal(t, int64(0), house.SellerID)
	assert.Nil(t, house.SellerName)

	dangling := byID[5]
	assert.Equal(t, int64(0), dangling.SellerID)
	assert.Nil(t, dangling.ProductName)

	orphanSeller := byID[6]
	assert.Equal(t, int64(9), orphanSeller.SellerID)
	assert.Nil(t, orphanSeller.SellerName)
	assert.Nil(t, orphanSeller.ProductName)
}

func TestSQLLedgerDateBounds(t *testing.T) {
	db := newLedgerDB(t)
	seedLedger(t, db)
	ledger, err := NewSQLLedger(db)
	require.NoError(t, err)

	pred := completed()
	pred.CreatedFrom = timePtr(day(2024, 6, 10))
	pred.CreatedBefore = timePtr(day(2024, 7, 1))

	records, err := ledger.Orders(context.Background(), pred)
	require.NoError(t, err)

	assert.Equal(t, []int64{5, 6, 2}, orderIDs(records))
	assert.True(t, records[2].CreatedAt.Equal(day(2024, 6, 30).Add(23*time.Hour+59*time.Minute)))
}

func TestSQLLedgerEntityFilters(t *testing.T) {
	db := newLedgerDB(t)
	seedLedger(t, db)
	ledger, err := NewSQLLedger(db)
	require.NoError(t, err)
	ctx := context.Background()

	byProduct := completed()
	byProduct.ProductID = int64Ptr(10)
	records, err := ledger.Orders(ctx, byProduct)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, orderIDs(records))

	bySeller := completed()
	bySeller.SellerID = int64Ptr(2)
	records, err = ledger.Orders(ctx, bySeller)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, orderIDs(records))

	unresolved := completed()
	unresolved.SellerID = int64Ptr(0)
	records, err = ledger.Orders(ctx, unresolved)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3}, orderIDs(records))
}

func TestSQLLedgerEmptyResult(t *testing.T) {
	db := newLedgerDB(t)
	ledger, err := NewSQLLedger(db)
	require.NoError(t, err)

	records, err := ledger.Orders(context.Background(), completed())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewSQLLedgerRequiresDB(t *testing.T) {
	_, err := NewSQLLedger(nil)
	require.Error(t, err)
}
