package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/enums"
)

// Product represents a catalog listing. Prices are EGP.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Description   string           `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"column:discount_price;type:numeric(12,2)"`
	Images        pq.StringArray   `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Sizes         pq.StringArray   `gorm:"column:sizes;type:text[];not null;default:ARRAY[]::text[]"`
	Gender        enums.Gender     `gorm:"column:gender;type:text;not null;default:'unisex'"`
	Color         string           `gorm:"column:color;not null;default:''"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	Stock         []ProductStock   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice is the price a cart line pays: the discount price when one
// is set, the base price otherwise. A zero discount is treated as unset.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && !p.DiscountPrice.IsZero() {
		return *p.DiscountPrice
	}
	return p.Price
}

// OffersSize reports whether the product is sold in the given size.
func (p Product) OffersSize(size enums.Size) bool {
	for _, s := range p.Sizes {
		if s == string(size) {
			return true
		}
	}
	return false
}
