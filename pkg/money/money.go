// Package money handles monetary amounts as integer minor units (cents).
// Amounts cross the API as decimal strings ("149.50") and are stored and
// sent to the payment gateway as int64 minor units; floating point is never
// involved.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxUnits bounds the whole part so units*100+cents cannot overflow int64.
const maxUnits = (math.MaxInt64 - 99) / 100

// ParseAmount converts a decimal string like "149.50" into minor units.
// At most two fraction digits are accepted and negative amounts are
// rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount has more than two decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if units > maxUnits {
		return 0, fmt.Errorf("amount %q is too large", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return units*100 + cents, nil
}

// FormatAmount renders minor units back into a decimal string.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
