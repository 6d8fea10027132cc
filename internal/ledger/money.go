package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a price string into minor currency units.
// Both "10.50" and "10,50" are accepted; anything finer than two
// decimal places is rejected rather than silently rounded.
func ParseAmount(s string) (int64, error) {
	clean := normalizeSeparators(s)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("parse amount %q: more than two decimal places", s)
	}

	return shifted.IntPart(), nil
}

// FormatAmount renders minor units with exactly two decimal places.
func FormatAmount(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}

// normalizeSeparators turns European-style amounts ("1.234,56") into the
// canonical dot-decimal form. A comma with no dot is a decimal comma.
func normalizeSeparators(s string) string {
	hasComma := false

	for _, r := range s {
		if r == ',' {
			hasComma = true
			break
		}
	}

	if !hasComma {
		return s
	}

	out := make([]rune, 0, len(s))

	for _, r := range s {
		switch r {
		case '.':
			// Thousands separator, drop it.
		case ',':
			out = append(out, '.')
		default:
			out = append(out, r)
		}
	}

	return string(out)
}
