package notify

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

type stubSender struct {
	enabled bool
	params  map[string]string
	calls   int
	err     error
}

func (s *stubSender) Send(_ context.Context, params map[string]string) error {
	s.calls++
	s.params = params
	return s.err
}

func (s *stubSender) Enabled() bool { return s.enabled }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "notify-test", Output: io.Discard})
}

func testOrder() *models.Order {
	return &models.Order{
		ID:              uuid.New(),
		CustomerName:    "Ahmed Hassan",
		CustomerPhone:   "01091234567",
		CustomerAddress: "12 Tahrir Square, Cairo",
		Items: types.OrderItems{
			{
				ProductID:   uuid.New(),
				ProductName: "Classic Tee",
				Size:        enums.SizeM,
				Quantity:    3,
				Price:       decimal.NewFromInt(499),
			},
			{
				ProductID:   uuid.New(),
				ProductName: "Oversized Hoodie",
				Size:        enums.SizeXL,
				Quantity:    1,
				Price:       decimal.NewFromInt(750),
			},
		},
		TotalAmount: decimal.NewFromInt(2247),
		Status:      enums.OrderStatusPending,
	}
}

func TestTemplateParams(t *testing.T) {
	order := testOrder()
	params := TemplateParams(order)

	if params["order_id"] != order.ID.String() {
		t.Errorf("order_id = %q", params["order_id"])
	}
	if params["customer_name"] != "Ahmed Hassan" {
		t.Errorf("customer_name = %q", params["customer_name"])
	}
	if params["total_amount"] != "2247 EGP" {
		t.Errorf("total_amount = %q", params["total_amount"])
	}

	itemsList := params["items_list"]
	for _, want := range []string{
		"Product: Classic Tee",
		"Size: M",
		"Quantity: 3",
		"Price per item: 499 EGP",
		"Subtotal: 1497 EGP",
		"Product: Oversized Hoodie",
		"Subtotal: 750 EGP",
	} {
		if !strings.Contains(itemsList, want) {
			t.Errorf("items_list missing %q:\n%s", want, itemsList)
		}
	}
	if got := strings.Count(itemsList, itemSeparator); got != 2 {
		t.Errorf("separator count = %d, want one per item", got)
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	sender := &stubSender{enabled: true}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	if err := notifier.SendOrderConfirmation(context.Background(), testOrder()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sender.calls != 1 {
		t.Errorf("sends = %d, want 1", sender.calls)
	}
	if sender.params["customer_phone"] != "01091234567" {
		t.Errorf("params not forwarded: %+v", sender.params)
	}
}

func TestSendOrderConfirmationSkipsWhenDisabled(t *testing.T) {
	sender := &stubSender{enabled: false}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	if err := notifier.SendOrderConfirmation(context.Background(), testOrder()); err != nil {
		t.Fatalf("disabled send should be silent: %v", err)
	}
	if sender.calls != 0 {
		t.Errorf("sends = %d, want 0 when disabled", sender.calls)
	}
}

func TestSendOrderConfirmationSurfacesSendError(t *testing.T) {
	sender := &stubSender{enabled: true, err: errors.New("upstream down")}
	notifier, err := NewNotifier(sender, testLogger())
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	if err := notifier.SendOrderConfirmation(context.Background(), testOrder()); err == nil {
		t.Fatal("expected send error to surface to the detached caller")
	}
}

func TestNewNotifierValidatesDeps(t *testing.T) {
	if _, err := NewNotifier(nil, testLogger()); err == nil {
		t.Error("expected error for nil client")
	}
	if _, err := NewNotifier(&stubSender{}, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}
