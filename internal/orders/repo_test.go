package orders

import (
	"context"
	"testing"
	"time"

	"github.com/orderpulse/backend/pkg/db/models"
	"github.com/orderpulse/backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  o_id TEXT PRIMARY KEY,
  c_id TEXT NOT NULL,
  o_status TEXT NOT NULL DEFAULT 'processing',
  total_value NUMERIC NOT NULL DEFAULT 0,
  o_placed_time DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  oi_id TEXT PRIMARY KEY,
  o_id TEXT NOT NULL,
  p_id TEXT NOT NULL,
  p_name TEXT NOT NULL,
  oi_qty INTEGER NOT NULL DEFAULT 0,
  oi_price NUMERIC NOT NULL DEFAULT 0,
  oi_total NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func placeOrder(t *testing.T, db *gorm.DB, id, customer string, total string, at time.Time) {
	t.Helper()

	order := &models.Order{
		ID:         id,
		CustomerID: customer,
		Status:     enums.OrderStatusConfirmed,
		TotalValue: decimal.RequireFromString(total),
		PlacedAt:   at,
		Items: []models.OrderItem{
			{
				ID:          id + "-item",
				ProductID:   "p1",
				ProductName: "Widget",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("5.00"),
				LineTotal:   decimal.RequireFromString("10.00"),
			},
		},
	}
	require.NoError(t, db.Create(order).Error)
}

func TestListInWindow(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	placeOrder(t, db, "o1", "alice", "100.00", base.AddDate(0, 0, -40))
	placeOrder(t, db, "o2", "alice", "50.00", base.AddDate(0, 0, -5))
	placeOrder(t, db, "o3", "bob", "75.00", base.Add(-time.Hour))

	listed, err := repo.ListInWindow(ctx, base.AddDate(0, 0, -30), base)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "o2", listed[0].ID, "orders come back chronologically")
	assert.Equal(t, "o3", listed[1].ID)
	require.Len(t, listed[0].Items, 1, "line items preloaded")
	assert.Equal(t, "Widget", listed[0].Items[0].ProductName)
}

func TestListInWindowEndExclusive(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	end := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	placeOrder(t, db, "o1", "alice", "10.00", end)

	listed, err := repo.ListInWindow(ctx, end.AddDate(0, 0, -7), end)
	require.NoError(t, err)
	assert.Empty(t, listed, "order placed exactly at the window end is excluded")
}

func TestFirstOrderTimes(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	placeOrder(t, db, "o1", "alice", "10.00", base.AddDate(0, 0, -100))
	placeOrder(t, db, "o2", "alice", "10.00", base.AddDate(0, 0, -1))
	placeOrder(t, db, "o3", "bob", "10.00", base.AddDate(0, 0, -2))

	firsts, err := repo.FirstOrderTimes(ctx)
	require.NoError(t, err)
	require.Len(t, firsts, 2)
	assert.True(t, firsts["alice"].Equal(base.AddDate(0, 0, -100)))
	assert.True(t, firsts["bob"].Equal(base.AddDate(0, 0, -2)))
}
