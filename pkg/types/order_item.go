package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
)

// OrderItem is the denormalized line stored on an order. The product name
// and unit price are captured at submission time so the order stays readable
// even if the catalog changes afterwards.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        enums.Size      `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderItems is persisted as a single jsonb column.
type OrderItems []OrderItem

// Subtotal sums price*quantity over the captured lines.
func (items OrderItems) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
