package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the current catalog snapshot used for inventory valuation.
type Product struct {
	ID        string          `gorm:"column:p_id;primaryKey"`
	Name      string          `gorm:"column:p_name;not null"`
	Price     decimal.Decimal `gorm:"column:p_price;type:numeric(12,2);not null"`
	Stock     int             `gorm:"column:p_stock;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
