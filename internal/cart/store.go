package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/enums"
)

// Line is one (product, size) entry in a cart. UnitPrice is the effective
// price captured from the product at the time of the last add for that line.
type Line struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Size        enums.Size      `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Subtotal is the line's price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the whole cart: an ordered list of lines plus the item subtotal.
// Total is recomputed from the lines on every transition, never maintained
// incrementally.
type State struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// EmptyState returns a cart with no items and a zero total.
func EmptyState() State {
	return State{Items: nil, Total: decimal.Zero}
}

// Action is one cart transition. Reduce is the only consumer.
type Action interface {
	isAction()
}

// AddItem appends a quantity-1 line for (ProductID, Size), or increments the
// existing line's quantity by exactly 1. The price and name are re-read from
// the product by the caller at dispatch time.
type AddItem struct {
	ProductID   uuid.UUID
	ProductName string
	Size        enums.Size
	UnitPrice   decimal.Decimal
}

// RemoveItem deletes the matching line. Absent key is a no-op.
type RemoveItem struct {
	ProductID uuid.UUID
	Size      enums.Size
}

// SetQuantity replaces the matching line's quantity. A quantity of zero or
// below behaves exactly as RemoveItem for that key.
type SetQuantity struct {
	ProductID uuid.UUID
	Size      enums.Size
	Quantity  int
}

// Clear resets to the empty cart.
type Clear struct{}

func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}

// Reduce applies one action to a state and returns the next state. It is
// pure: the input state is never mutated and no I/O happens here. Stock
// bounds are the caller's responsibility.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		return reduceAdd(state, a)
	case RemoveItem:
		return reduceRemove(state, a.ProductID, a.Size)
	case SetQuantity:
		if a.Quantity <= 0 {
			return reduceRemove(state, a.ProductID, a.Size)
		}
		return reduceSetQuantity(state, a)
	case Clear:
		return EmptyState()
	default:
		return state
	}
}

func reduceAdd(state State, a AddItem) State {
	items := make([]Line, len(state.Items))
	copy(items, state.Items)

	found := false
	for i := range items {
		if items[i].ProductID == a.ProductID && items[i].Size == a.Size {
			items[i].Quantity++
			items[i].ProductName = a.ProductName
			items[i].UnitPrice = a.UnitPrice
			found = true
			break
		}
	}
	if !found {
		items = append(items, Line{
			ProductID:   a.ProductID,
			ProductName: a.ProductName,
			Size:        a.Size,
			Quantity:    1,
			UnitPrice:   a.UnitPrice,
		})
	}
	return State{Items: items, Total: recompute(items)}
}

func reduceRemove(state State, productID uuid.UUID, size enums.Size) State {
	items := make([]Line, 0, len(state.Items))
	for _, line := range state.Items {
		if line.ProductID == productID && line.Size == size {
			continue
		}
		items = append(items, line)
	}
	if len(items) == len(state.Items) {
		return state
	}
	if len(items) == 0 {
		items = nil
	}
	return State{Items: items, Total: recompute(items)}
}

func reduceSetQuantity(state State, a SetQuantity) State {
	items := make([]Line, len(state.Items))
	copy(items, state.Items)

	for i := range items {
		if items[i].ProductID == a.ProductID && items[i].Size == a.Size {
			items[i].Quantity = a.Quantity
			return State{Items: items, Total: recompute(items)}
		}
	}
	return state
}

func recompute(items []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Quantity reports the current quantity for a (product, size) key, zero when
// the line is absent.
func (s State) Quantity(productID uuid.UUID, size enums.Size) int {
	for _, line := range s.Items {
		if line.ProductID == productID && line.Size == size {
			return line.Quantity
		}
	}
	return 0
}
