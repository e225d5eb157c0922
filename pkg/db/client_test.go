package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/db/models"
	"github.com/angelmondragon/sales-analytics/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := NewFromGorm(db)

	ctx := context.Background()
	name := "Acme"
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Seller{Name: &name}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Seller{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Seller{Name: &name}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&models.Seller{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestOrderTotalPriceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	client := NewFromGorm(db)

	order := models.Order{
		ProductID:  7,
		Quantity:   3,
		TotalPrice: decimal.RequireFromString("42.5"),
		Status:     enums.OrderStatusCompleted,
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	var loaded models.Order
	if err := client.Raw(context.Background(), "SELECT * FROM orders WHERE id = ?", order.ID).Scan(&loaded).Error; err != nil {
		t.Fatalf("raw select: %v", err)
	}
	if !loaded.TotalPrice.Equal(decimal.RequireFromString("42.5")) {
		t.Fatalf("expected total 42.5, got %s", loaded.TotalPrice)
	}
	if loaded.Status != enums.OrderStatusCompleted {
		t.Fatalf("expected completed status, got %s", loaded.Status)
	}
}

func TestNewWithSQLiteDriver(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{
		DSN:    "file::memory:",
		Driver: config.DBDriverSQLite,
	}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected missing DSN to fail")
	}
}
