package enums

import (
	"fmt"
	"strings"
)

// Size describes the allowed values for the `size` column in product_stock and order items.
type Size string

const (
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

var validSizes = []Size{SizeM, SizeL, SizeXL}

// Sizes returns the canonical size enumeration in display order.
func Sizes() []Size {
	out := make([]Size, len(validSizes))
	copy(out, validSizes)
	return out
}

// IsValid reports whether the value matches the canonical size enum.
func (s Size) IsValid() bool {
	for _, candidate := range validSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSize converts the raw string to Size. Matching is case-insensitive.
func ParseSize(value string) (Size, error) {
	for _, candidate := range validSizes {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid size %q", value)
}
