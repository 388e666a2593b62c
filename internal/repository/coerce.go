package repository

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

var integerText = regexp.MustCompile(`^(0|-?[1-9][0-9]*)$`)

// maxExactInt bounds integers a float64 cell holds without rounding.
const maxExactInt = 1 << 53

// Coerce turns a value into something every backend stores verbatim:
// string, int64 or float64. Text is only converted to a number when the
// number prints back to the same text, so "007", "-0" and "1e3" stay
// strings. Integers beyond float64 precision are written as text.
func Coerce(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return coerceText(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(domain.CreatedLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return Coerce(*x)
	case domain.TimeOfDay:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return ""
		}
		return Coerce(x.Decimal)
	case decimal.Decimal:
		if x.IsInteger() {
			if x.Abs().LessThan(decimal.NewFromInt(maxExactInt)) {
				return x.IntPart()
			}
			return x.String()
		}
		if f, exact := x.Float64(); exact {
			return f
		}
		return x.String()
	case int:
		return exactInt(int64(x))
	case int8:
		return exactInt(int64(x))
	case int16:
		return exactInt(int64(x))
	case int32:
		return exactInt(int64(x))
	case int64:
		return exactInt(x)
	case uint8:
		return exactInt(int64(x))
	case uint16:
		return exactInt(int64(x))
	case uint32:
		return exactInt(int64(x))
	case float32:
		return coerceFloat(float64(x))
	case float64:
		return coerceFloat(x)
	case fmt.Stringer:
		return coerceText(x.String())
	default:
		return coerceText(fmt.Sprint(x))
	}
}

// CoerceRow applies Coerce to every value.
func CoerceRow(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = Coerce(v)
	}
	return out
}

func coerceText(s string) any {
	if integerText.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > -maxExactInt && n < maxExactInt {
			return n
		}
		return s
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) &&
			strconv.FormatFloat(f, 'f', -1, 64) == s {
			return f
		}
	}
	return s
}

func coerceFloat(f float64) any {
	if !isFinite(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return int64(f)
	}
	return f
}

func exactInt(n int64) any {
	if n > -maxExactInt && n < maxExactInt {
		return n
	}
	return strconv.FormatInt(n, 10)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
