package catalog

import (
	"context"

	"github.com/orderpulse/backend/pkg/db/models"
)

// Repository defines the read surface over logged catalog requests.
type Repository interface {
	List(ctx context.Context) ([]models.CatalogRequest, error)
}
