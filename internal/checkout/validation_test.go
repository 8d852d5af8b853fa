package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

func orderItems(price int64, quantity int) types.OrderItems {
	return types.OrderItems{{
		ProductID:   uuid.New(),
		ProductName: "Classic Tee",
		Size:        enums.SizeM,
		Quantity:    quantity,
		Price:       decimal.NewFromInt(price),
	}}
}

func TestValidateOrder(t *testing.T) {
	maxAmount := decimal.NewFromInt(10000)
	validItems := orderItems(499, 3)

	tests := []struct {
		name    string
		draft   [3]string // name, phone, address
		items   types.OrderItems
		wantMsg string
	}{
		{
			name:  "all valid",
			draft: [3]string{"Ahmed Hassan", "01091234567", "12 Tahrir Square, Cairo"},
			items: validItems,
		},
		{
			name:    "name too short",
			draft:   [3]string{"Jo", "01091234567", "12 Tahrir Square, Cairo"},
			items:   validItems,
			wantMsg: msgNameTooShort,
		},
		{
			name:    "name padded with spaces still too short",
			draft:   [3]string{"  Jo  ", "01091234567", "12 Tahrir Square, Cairo"},
			items:   validItems,
			wantMsg: msgNameTooShort,
		},
		{
			name:    "phone ten digits",
			draft:   [3]string{"Ahmed Hassan", "0109999999", "12 Tahrir Square, Cairo"},
			items:   validItems,
			wantMsg: msgInvalidPhone,
		},
		{
			name:    "phone wrong operator digit",
			draft:   [3]string{"Ahmed Hassan", "01391234567", "12 Tahrir Square, Cairo"},
			items:   validItems,
			wantMsg: msgInvalidPhone,
		},
		{
			name:    "phone with letters",
			draft:   [3]string{"Ahmed Hassan", "0109123456a", "12 Tahrir Square, Cairo"},
			items:   validItems,
			wantMsg: msgInvalidPhone,
		},
		{
			name:    "address too short",
			draft:   [3]string{"Ahmed Hassan", "01091234567", "Cairo"},
			items:   validItems,
			wantMsg: msgAddressTooShort,
		},
		{
			name:    "empty cart",
			draft:   [3]string{"Ahmed Hassan", "01091234567", "12 Tahrir Square, Cairo"},
			items:   nil,
			wantMsg: msgEmptyCart,
		},
		{
			name:    "subtotal above ceiling",
			draft:   [3]string{"Ahmed Hassan", "01091234567", "12 Tahrir Square, Cairo"},
			items:   orderItems(2001, 5),
			wantMsg: msgAmountExceeded,
		},
		{
			name:  "subtotal at ceiling passes",
			draft: [3]string{"Ahmed Hassan", "01091234567", "12 Tahrir Square, Cairo"},
			items: orderItems(2000, 5),
		},
		{
			name:    "name check wins over phone check",
			draft:   [3]string{"Jo", "bad", "x"},
			items:   nil,
			wantMsg: msgNameTooShort,
		},
		{
			name:    "phone check wins over address check",
			draft:   [3]string{"Ahmed Hassan", "bad", "x"},
			items:   nil,
			wantMsg: msgInvalidPhone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOrder(tc.draft[0], tc.draft[1], tc.draft[2], tc.items, maxAmount)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			domainErr := pkgerrors.As(err)
			if domainErr == nil {
				t.Fatalf("expected validation error, got %v", err)
			}
			if domainErr.Code() != pkgerrors.CodeValidation {
				t.Errorf("code = %v, want validation", domainErr.Code())
			}
			if domainErr.Message() != tc.wantMsg {
				t.Errorf("message = %q, want %q", domainErr.Message(), tc.wantMsg)
			}
		})
	}
}

func TestValidateOrderCeilingExcludesShipping(t *testing.T) {
	// subtotal sits exactly at the ceiling; adding the 50 EGP shipping fee
	// would push past it, but the fee is never part of this check
	items := orderItems(10000, 1)
	err := ValidateOrder("Ahmed Hassan", "01091234567", "12 Tahrir Square, Cairo", items, decimal.NewFromInt(10000))
	if err != nil {
		t.Fatalf("ceiling must ignore shipping: %v", err)
	}
}

func TestValidateOrderAcceptsAllOperatorPrefixes(t *testing.T) {
	for _, phone := range []string{"01012345678", "01112345678", "01212345678", "01512345678"} {
		if err := ValidateOrder("Ahmed Hassan", phone, "12 Tahrir Square, Cairo", orderItems(100, 1), decimal.NewFromInt(10000)); err != nil {
			t.Errorf("phone %s rejected: %v", phone, err)
		}
	}
}

func TestValidateOrderCountsRunesNotBytes(t *testing.T) {
	// three-letter Arabic name is three characters even though it is more bytes
	err := ValidateOrder("أحد", "01091234567", "12 Tahrir Square, Cairo", orderItems(100, 1), decimal.NewFromInt(10000))
	if err != nil {
		t.Fatalf("multibyte name rejected: %v", err)
	}
}
