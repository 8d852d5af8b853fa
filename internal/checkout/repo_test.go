package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_address TEXT NOT NULL,
  additional_info TEXT,
  items TEXT NOT NULL DEFAULT '[]',
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)

	return db
}

func testOrder(phone string, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:              uuid.New(),
		CustomerName:    "Ahmed Hassan",
		CustomerPhone:   phone,
		CustomerAddress: "12 Tahrir Square, Downtown, Cairo",
		Items: types.OrderItems{
			{ProductID: uuid.New(), ProductName: "Classic Tee", Size: enums.SizeM, Quantity: 2, Price: decimal.NewFromInt(499)},
		},
		TotalAmount: decimal.NewFromInt(998),
		Status:      enums.OrderStatusPending,
		CreatedAt:   createdAt,
	}
}

func TestInsertOrderRoundTrip(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := testOrder("01091234567", time.Now())
	saved, err := repo.InsertOrder(ctx, order)
	require.NoError(t, err)
	require.NotNil(t, saved)

	var loaded models.Order
	require.NoError(t, db.First(&loaded, "id = ?", order.ID).Error)
	assert.Equal(t, order.CustomerPhone, loaded.CustomerPhone)
	assert.Equal(t, enums.OrderStatusPending, loaded.Status)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Classic Tee", loaded.Items[0].ProductName)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(998)))
}

func TestCountOrdersSinceFiltersPhoneAndWindow(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	recent := []*models.Order{
		testOrder("01091234567", now.Add(-5*time.Minute)),
		testOrder("01091234567", now.Add(-20*time.Minute)),
	}
	stale := testOrder("01091234567", now.Add(-45*time.Minute))
	other := testOrder("01227654321", now.Add(-5*time.Minute))

	for _, order := range append(recent, stale, other) {
		_, err := repo.InsertOrder(ctx, order)
		require.NoError(t, err)
	}

	count, err := repo.CountOrdersSince(ctx, "01091234567", now.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountOrdersSince(ctx, "01227654321", now.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
