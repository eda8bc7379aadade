package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// CoercePrice turns operator input into a price. Anything that is not a finite,
// non-negative decimal number becomes 0 instead of an error.
func CoercePrice(v any) float64 {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case bool:
		return 0
	case string:
		f, err = parseDecimal(x)
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// ParseID coerces v to a product id, so "2" and 2 address the same record.
// Strings are read as base 10 only. ok is false when v cannot name any product.
func ParseID(v any) (int64, bool) {
	var (
		id  int64
		err error
	)
	switch x := v.(type) {
	case bool:
		return 0, false
	case string:
		id, err = parseDecimalInt(x)
	default:
		id, err = cast.ToInt64E(v)
	}
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseDecimalInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	// "2.0" names product 2; "2.5" names nothing.
	f, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, strconv.ErrRange
	}
	return int64(f), nil
}

// parseDecimal accepts plain decimal notation only: no hex floats, no
// underscores. NaN and Inf still parse and are left to the caller.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if strings.ContainsRune(s, '_') ||
		strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// CoerceStatus maps free-form input onto a Status. Anything but "active" is a draft.
func CoerceStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusActive)) {
		return StatusActive
	}
	return StatusDraft
}

// CleanFeatures trims entries and drops blank ones, keeping order.
func CleanFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
