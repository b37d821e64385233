package orders

import (
	"context"
	"time"

	"github.com/orderpulse/backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListInWindow(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("o_placed_time >= ? AND o_placed_time < ?", start, end).
		Order("o_placed_time ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FirstOrderTimes returns each customer's earliest order timestamp over the
// full history, not just a window. New-customer counting needs the global
// minimum.
func (r *repository) FirstOrderTimes(ctx context.Context) (map[string]time.Time, error) {
	type row struct {
		CustomerID string    `gorm:"column:c_id"`
		FirstAt    time.Time `gorm:"column:first_at"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("c_id, MIN(o_placed_time) AS first_at").
		Group("c_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		out[r.CustomerID] = r.FirstAt
	}
	return out, nil
}
