package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreatedLayout is the storage format for creation timestamps.
const CreatedLayout = "2006-01-02 15:04:05"

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrDateRequired    = errors.New("date is required")
	ErrDateOutOfRange  = errors.New("date is outside the trip")
	ErrNegativeBudget  = errors.New("budget must not be negative")
	ErrInvalidPriority = errors.New("priority must be Low, Medium or High")
)

// Plan is a single dated itinerary entry.
type Plan struct {
	ID       string
	Title    string
	Date     time.Time
	Time     TimeOfDay
	Location string
	Category Category
	Budget   decimal.NullDecimal
	Notes    string
	Priority Priority
	Created  time.Time
}

// Validate checks the required fields and the data-model invariants
// against the given trip.
func (p *Plan) Validate(trip TripRange) error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Date.IsZero() {
		return ErrDateRequired
	}
	if !trip.Contains(p.Date) {
		return fmt.Errorf("%w: %s not in %s..%s", ErrDateOutOfRange,
			p.Date.Format(DateLayout), trip.Start.Format(DateLayout), trip.End.Format(DateLayout))
	}
	if p.Budget.Valid && p.Budget.Decimal.IsNegative() {
		return ErrNegativeBudget
	}
	if !ValidPriorities[string(p.Priority)] {
		return fmt.Errorf("%w: got %q", ErrInvalidPriority, p.Priority)
	}
	return nil
}

// Label is the short human form used in pickers, e.g. "Dinner - Dec 20".
func (p *Plan) Label() string {
	return fmt.Sprintf("%s - %s", p.Title, p.Date.Format("Jan 02"))
}

// DisplayID truncates ID to 8 characters.
func (p *Plan) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// SortPlans sorts in place by (date, time). Equal keys keep their order.
func SortPlans(plans []*Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Time.Minutes() < b.Time.Minutes()
	})
}
