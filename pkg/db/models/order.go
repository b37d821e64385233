package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderpulse/backend/pkg/enums"
)

// Order is the read view of a placed order. The analytics engine never
// mutates it; writes happen in the intake pipeline upstream.
type Order struct {
	ID         string            `gorm:"column:o_id;primaryKey"`
	CustomerID string            `gorm:"column:c_id;not null;index"`
	Status     enums.OrderStatus `gorm:"column:o_status;type:text;not null;default:'processing'"`
	TotalValue decimal.Decimal   `gorm:"column:total_value;type:numeric(12,2);not null"`
	PlacedAt   time.Time         `gorm:"column:o_placed_time;not null;index"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
