package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orderpulse/backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	requests := `
CREATE TABLE IF NOT EXISTS catalog_requests (
  id TEXT PRIMARY KEY,
  item_name TEXT NOT NULL,
  requested_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(requests).Error)
	return db
}

func TestListCatalogRequests(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.CatalogRequest{
		ID: uuid.New(), ItemName: "Sprocket", RequestedAt: base.AddDate(0, 0, 2),
	}).Error)
	require.NoError(t, db.Create(&models.CatalogRequest{
		ID: uuid.New(), ItemName: "Blue Mugs", RequestedAt: base,
	}).Error)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Blue Mugs", listed[0].ItemName, "requests come back chronologically")
	assert.Equal(t, "Sprocket", listed[1].ItemName)
}

func TestListCatalogRequestsEmpty(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	listed, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
