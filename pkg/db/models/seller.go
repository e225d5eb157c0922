package models

import "time"

// Seller is a marketplace merchant owning zero or more products.
type Seller struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      *string   `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Seller) TableName() string { return "sellers" }
