package checkout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

// Validation messages surfaced verbatim to the customer.
const (
	msgNameTooShort    = "Please enter a valid name (at least 3 characters)"
	msgInvalidPhone    = "Please enter a valid Egyptian phone number"
	msgAddressTooShort = "Please enter a detailed address"
	msgEmptyCart       = "Cart is empty"
	msgAmountExceeded  = "Order amount exceeds maximum limit"

	minNameLength    = 3
	minAddressLength = 10
)

// Egyptian mobile numbers: 01 then an operator digit in {0,1,2,5} then 8 more.
var egyptianPhonePattern = regexp.MustCompile(`^01[0125][0-9]{8}$`)

// ValidateOrder checks the draft fields in a fixed order, first failure wins:
// name, phone, address, cart non-emptiness, then the subtotal ceiling. The
// ceiling is checked against the item subtotal alone; the shipping fee is
// never part of it. Returns nil when every check passes.
func ValidateOrder(name, phone, address string, items types.OrderItems, maxAmount decimal.Decimal) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return pkgerrors.New(pkgerrors.CodeValidation, msgNameTooShort)
	}
	if !egyptianPhonePattern.MatchString(strings.TrimSpace(phone)) {
		return pkgerrors.New(pkgerrors.CodeValidation, msgInvalidPhone)
	}
	if utf8.RuneCountInString(strings.TrimSpace(address)) < minAddressLength {
		return pkgerrors.New(pkgerrors.CodeValidation, msgAddressTooShort)
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, msgEmptyCart)
	}
	if items.Subtotal().GreaterThan(maxAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, msgAmountExceeded)
	}
	return nil
}
