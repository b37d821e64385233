package models

import "time"

// Customer is referenced by orders; only identity matters to analytics.
type Customer struct {
	ID        string    `gorm:"column:c_id;primaryKey"`
	Name      string    `gorm:"column:c_name;not null"`
	Email     string    `gorm:"column:c_email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
