package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/enums"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

// Order is the denormalized record created once per successful checkout.
// It is never mutated by the storefront after creation.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone;not null;index"`
	CustomerAddress string            `gorm:"column:customer_address;not null"`
	AdditionalInfo  *string           `gorm:"column:additional_info"`
	Items           types.OrderItems  `gorm:"column:items;type:jsonb;serializer:json"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
