package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stitchcairo/storefront-backend/pkg/enums"
)

// ProductStock is the live available quantity for one (product, size) pair.
// One row per pair; the quantity is authoritative and replaced wholesale on
// every catalog refresh.
type ProductStock struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_stock_product_size"`
	Size      enums.Size `gorm:"column:size;type:text;not null;uniqueIndex:idx_product_stock_product_size"`
	Quantity  int        `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
