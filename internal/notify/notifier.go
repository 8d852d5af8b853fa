package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/email"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

const itemSeparator = "----------------------------------------"

type sender interface {
	Send(ctx context.Context, params map[string]string) error
	Enabled() bool
}

// Notifier renders the order confirmation and hands it to the EmailJS
// client. Callers treat every send as best effort.
type Notifier struct {
	client sender
	logger *logger.Logger
}

var _ sender = (*email.Client)(nil)

// NewNotifier builds the confirmation notifier.
func NewNotifier(client sender, logg *logger.Logger) (*Notifier, error) {
	if client == nil {
		return nil, fmt.Errorf("email client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Notifier{client: client, logger: logg}, nil
}

// SendOrderConfirmation renders the order into template params and sends it.
// When the notifier has no credentials the send is skipped silently.
func (n *Notifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order required")
	}
	if !n.client.Enabled() {
		n.logger.Info(ctx, "email notifier disabled, skipping confirmation")
		return nil
	}
	return n.client.Send(ctx, TemplateParams(order))
}

// TemplateParams maps an order onto the EmailJS template fields.
func TemplateParams(order *models.Order) map[string]string {
	return map[string]string{
		"order_id":         order.ID.String(),
		"customer_name":    order.CustomerName,
		"customer_phone":   order.CustomerPhone,
		"customer_address": order.CustomerAddress,
		"items_list":       formatItems(order),
		"total_amount":     fmt.Sprintf("%s EGP", order.TotalAmount),
	}
}

// formatItems renders one block per line item with its subtotal, each block
// closed by a separator line.
func formatItems(order *models.Order) string {
	blocks := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		blocks = append(blocks, fmt.Sprintf(
			"\nProduct: %s\nSize: %s\nQuantity: %d\nPrice per item: %s EGP\nSubtotal: %s EGP\n%s",
			item.ProductName,
			item.Size,
			item.Quantity,
			item.Price,
			subtotal,
			itemSeparator,
		))
	}
	return strings.Join(blocks, "\n")
}
