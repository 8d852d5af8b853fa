package checkout

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
)

// Repository persists orders and answers the rate-limit count query.
type Repository interface {
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CountOrdersSince(ctx context.Context, customerPhone string, since time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an order repository backed by the provided DB handle.
func NewRepository(db *gorm.DB) Repository {
	if db == nil {
		return nil
	}
	return &repository{db: db}
}

func (r *repository) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CountOrdersSince(ctx context.Context, customerPhone string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_phone = ? AND created_at >= ?", customerPhone, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
