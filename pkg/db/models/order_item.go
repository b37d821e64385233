package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem captures the line snapshot taken when the order was placed.
// Unit price is frozen at placement time and never renegotiated.
type OrderItem struct {
	ID          string          `gorm:"column:oi_id;primaryKey"`
	OrderID     string          `gorm:"column:o_id;not null;index"`
	ProductID   string          `gorm:"column:p_id;not null;index"`
	ProductName string          `gorm:"column:p_name;not null"`
	Quantity    int             `gorm:"column:oi_qty;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:oi_price;type:numeric(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"column:oi_total;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
