package currency

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce turns a loosely typed upstream price into a finite number.
// Strings keep only digits and dots before parsing, so "$1,234.50" reads
// as 1234.5. Anything else, or a non-finite result, is reported absent.
func Coerce(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseStripped(n.String())
	case string:
		return parseStripped(n)
	default:
		return 0, false
	}
}

// CoercePtr is Coerce with absence expressed as nil.
func CoercePtr(v any) *float64 {
	f, ok := Coerce(v)
	if !ok {
		return nil
	}
	return &f
}

func parseStripped(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
