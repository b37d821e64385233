package products

import (
	"context"

	"github.com/orderpulse/backend/pkg/db/models"
)

// Repository defines the read surface over the product catalog snapshot.
type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
}
