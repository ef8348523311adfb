package shared

import (
	"github.com/shopspring/decimal"
)

// CoerceAmount converts an arbitrary value to a fixed-point decimal.
// Nil and non-numeric values coerce to zero with ok=false. Reporting paths
// deliberately favour availability over strict validation: a corrupt cell
// in one row must not take down an entire summary.
func CoerceAmount(v interface{}) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero, false
		}
		return x.Decimal, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// SumAmounts sums a collection of loosely typed values, skipping anything
// that does not coerce to a decimal. Returns zero for empty input.
func SumAmounts(values []interface{}) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		d, ok := CoerceAmount(v)
		if !ok {
			continue
		}
		total = total.Add(d)
	}
	return total
}

// SumField sums one numeric field extracted from each record. The extractor
// may return any value CoerceAmount understands.
func SumField[T any](records []T, field func(T) interface{}) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		d, ok := CoerceAmount(field(r))
		if !ok {
			continue
		}
		total = total.Add(d)
	}
	return total
}
