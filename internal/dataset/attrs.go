package dataset

import (
	"strconv"
	"strings"
)

// Numeric coerces an attribute value to float64. Shapefile DBF fields
// arrive as strings even when the field type is numeric, so string
// values are parsed; booleans map to 0/1. Returns false when the value
// is absent or not numeric.
func Numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NumericAttr looks up a feature attribute and coerces it to float64.
func NumericAttr(f Feature, column string) (float64, bool) {
	v, ok := f.Attrs[column]
	if !ok || v == nil {
		return 0, false
	}
	return Numeric(v)
}
