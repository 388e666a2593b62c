package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

// spreadsheetEpoch is day zero of spreadsheet date serials.
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// cellString renders a cell read back from a backend as text. Whole
// numbers print without a fraction so numeric IDs survive the trip.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func cellDate(v any) (time.Time, error) {
	if f, ok := v.(float64); ok {
		return domain.DateOf(spreadsheetEpoch.AddDate(0, 0, int(f))), nil
	}
	s := cellString(v)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range []string{domain.DateLayout, domain.CreatedLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// cellTime treats an empty cell as midnight.
func cellTime(v any) (domain.TimeOfDay, error) {
	if f, ok := v.(float64); ok {
		return domain.TimeOfDayFromFraction(f)
	}
	s := cellString(v)
	if s == "" {
		return domain.TimeOfDay{}, nil
	}
	return domain.ParseTimeOfDay(s)
}

func cellBudget(v any) (decimal.NullDecimal, error) {
	switch x := v.(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(x)), nil
	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(x)), nil
	}
	s := strings.ReplaceAll(strings.TrimPrefix(cellString(v), "$"), ",", "")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid budget %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// cellCreated treats an empty cell as unknown.
func cellCreated(v any) (time.Time, error) {
	s := cellString(v)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{domain.CreatedLayout, time.RFC3339, domain.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid created timestamp %q", s)
}

func blankRow(row []any) bool {
	for _, v := range row {
		if cellString(v) != "" {
			return false
		}
	}
	return true
}
