package testutil

import (
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripStart and TripEnd bound the trip used by fixtures.
const (
	TripStart = "2025-12-17"
	TripEnd   = "2026-01-01"
)

// Trip returns the fixture trip range.
func Trip() domain.TripRange {
	r, err := domain.ParseTripRange(TripStart, TripEnd)
	if err != nil {
		panic(err)
	}
	return r
}

// Date parses YYYY-MM-DD and panics on bad input.
func Date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Plan options
type PlanOption func(*domain.Plan)

func WithTime(hour, minute int) PlanOption {
	return func(p *domain.Plan) {
		p.Time = domain.TimeOfDay{Hour: hour, Minute: minute}
	}
}

func WithLocation(l string) PlanOption {
	return func(p *domain.Plan) {
		p.Location = l
	}
}

func WithCategory(c domain.Category) PlanOption {
	return func(p *domain.Plan) {
		p.Category = c
	}
}

func WithBudget(amount string) PlanOption {
	return func(p *domain.Plan) {
		p.Budget = decimal.NewNullDecimal(decimal.RequireFromString(amount))
	}
}

func WithNotes(n string) PlanOption {
	return func(p *domain.Plan) {
		p.Notes = n
	}
}

func WithPriority(pr domain.Priority) PlanOption {
	return func(p *domain.Plan) {
		p.Priority = pr
	}
}

func WithID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ID = id
	}
}

// NewTestPlan builds a Dining plan at 19:00 on the given YYYY-MM-DD date.
func NewTestPlan(title, date string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:       uuid.New().String(),
		Title:    title,
		Date:     Date(date),
		Time:     domain.TimeOfDay{Hour: 19},
		Category: domain.CategoryDining,
		Created:  time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
