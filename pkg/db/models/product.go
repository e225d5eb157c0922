package models

import "time"

// Product represents a catalog listing. SellerID 0 marks a platform-owned product.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SellerID  int64     `gorm:"column:seller_id;not null;default:0;index"`
	Name      *string   `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
