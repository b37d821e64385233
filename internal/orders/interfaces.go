package orders

import (
	"context"
	"time"

	"github.com/orderpulse/backend/pkg/db/models"
)

// Repository defines the read surface over placed orders. The analytics
// engine never writes; order intake happens upstream.
type Repository interface {
	ListInWindow(ctx context.Context, start, end time.Time) ([]models.Order, error)
	FirstOrderTimes(ctx context.Context) (map[string]time.Time, error)
}
