package products

import (
	"context"

	"github.com/orderpulse/backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("p_id ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
