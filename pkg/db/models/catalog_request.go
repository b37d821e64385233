package models

import (
	"time"

	"github.com/google/uuid"
)

// CatalogRequest logs an unmet demand event: a customer asked for something
// the catalog could not serve. Item names are free text and are not required
// to match a Product. Rows accumulate indefinitely; analytics only reads them.
type CatalogRequest struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemName    string    `gorm:"column:item_name;not null"`
	RequestedAt time.Time `gorm:"column:requested_at;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
