package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

var errMissingRequired = errors.New("title and date are required")

// planFields holds a plan as raw text, the way flags and forms collect it.
type planFields struct {
	Title    string
	Date     string
	Time     string
	Location string
	Category string
	Budget   string
	Priority string
	Notes    string
}

func fieldsFromPlan(p *domain.Plan) planFields {
	f := planFields{
		Title:    p.Title,
		Date:     p.Date.Format(domain.DateLayout),
		Time:     p.Time.String(),
		Location: p.Location,
		Category: string(p.Category),
		Priority: string(p.Priority),
		Notes:    p.Notes,
	}
	if p.Budget.Valid {
		f.Budget = p.Budget.Decimal.String()
	}
	return f
}

// toPlan parses the fields. An empty category becomes fallback.
func (f planFields) toPlan(fallback domain.Category) (*domain.Plan, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" || strings.TrimSpace(f.Date) == "" {
		return nil, errMissingRequired
	}
	date, err := domain.ParseDate(strings.TrimSpace(f.Date))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", f.Date)
	}
	p := &domain.Plan{
		Title:    title,
		Date:     date,
		Location: strings.TrimSpace(f.Location),
		Category: domain.CategoryOr(f.Category, fallback),
		Priority: normalizePriority(f.Priority),
		Notes:    strings.TrimSpace(f.Notes),
	}
	if t := strings.TrimSpace(f.Time); t != "" {
		if p.Time, err = domain.ParseTimeOfDay(t); err != nil {
			return nil, err
		}
	}
	if b := strings.TrimSpace(f.Budget); b != "" {
		d, err := parseBudget(b)
		if err != nil {
			return nil, err
		}
		p.Budget = decimal.NewNullDecimal(d)
	}
	return p, nil
}

// normalizePriority accepts any casing of a known priority. Unknown values
// pass through so validation can reject them.
func normalizePriority(s string) domain.Priority {
	s = strings.TrimSpace(s)
	for _, p := range domain.Priorities {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return domain.Priority(s)
}

func parseBudget(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid budget %q", s)
	}
	return d, nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validateTripDate accepts a YYYY-MM-DD date inside the trip.
func validateTripDate(trip domain.TripRange) func(string) error {
	return func(s string) error {
		d, err := domain.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("use YYYY-MM-DD format")
		}
		if !trip.Contains(d) {
			return fmt.Errorf("pick a date between %s and %s",
				trip.Start.Format(domain.DateLayout), trip.End.Format(domain.DateLayout))
		}
		return nil
	}
}

// validateOptionalTime accepts empty or HH:MM.
func validateOptionalTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseTimeOfDay(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// validateOptionalBudget accepts empty or a non-negative amount.
func validateOptionalBudget(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := parseBudget(s)
	if err != nil {
		return fmt.Errorf("enter an amount such as 45.50")
	}
	if d.IsNegative() {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}
