package catalog

import (
	"context"

	"github.com/orderpulse/backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog request repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.CatalogRequest, error) {
	var requests []models.CatalogRequest
	err := r.db.WithContext(ctx).
		Order("requested_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
