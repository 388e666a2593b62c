package service

import (
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary is the header line shown above the itinerary.
type Summary struct {
	TotalPlans  int
	TripDays    int
	DaysPlanned int
	TotalBudget decimal.Decimal
}

// Summarize counts plans, distinct planned dates and the budget total.
func Summarize(plans []*domain.Plan, trip domain.TripRange) Summary {
	sum := Summary{TotalPlans: len(plans), TripDays: trip.Len(), TotalBudget: decimal.Zero}
	days := make(map[time.Time]bool)
	for _, p := range plans {
		days[domain.DateOf(p.Date)] = true
		if p.Budget.Valid {
			sum.TotalBudget = sum.TotalBudget.Add(p.Budget.Decimal)
		}
	}
	sum.DaysPlanned = len(days)
	return sum
}

// DayPlans groups plans for one trip day.
type DayPlans struct {
	Date   time.Time
	Number int
	Plans  []*domain.Plan
}

// Timeline returns every day of trip with its plans sorted by time. When
// categories is empty every category is shown.
func Timeline(plans []*domain.Plan, trip domain.TripRange, categories []domain.Category) []DayPlans {
	keep := make(map[domain.Category]bool, len(categories))
	for _, c := range categories {
		keep[c] = true
	}
	byDay := make(map[time.Time][]*domain.Plan)
	for _, p := range plans {
		if len(keep) > 0 && !keep[p.Category] {
			continue
		}
		d := domain.DateOf(p.Date)
		byDay[d] = append(byDay[d], p)
	}

	days := trip.Days()
	out := make([]DayPlans, 0, len(days))
	for _, d := range days {
		dayPlans := byDay[d]
		domain.SortPlans(dayPlans)
		out = append(out, DayPlans{Date: d, Number: trip.DayNumber(d), Plans: dayPlans})
	}
	return out
}

// Filter returns plans in category (all when category is empty), sorted
// by date and time. The input is not modified.
func Filter(plans []*domain.Plan, category domain.Category) []*domain.Plan {
	out := make([]*domain.Plan, 0, len(plans))
	for _, p := range plans {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	domain.SortPlans(out)
	return out
}
