package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultTime is used for plans that give no time.
var DefaultTime = domain.TimeOfDay{Hour: 19}

// Convert turns a validated file into plans ready for the plan service.
// Plans without a category get fallback. Call Validate first.
func Convert(f *ImportFile, fallback domain.Category) ([]*domain.Plan, error) {
	plans := make([]*domain.Plan, 0, len(f.Plans))
	for i, in := range f.Plans {
		date, err := domain.ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			return nil, fmt.Errorf("plans[%d]: %w", i, err)
		}
		p := &domain.Plan{
			Title:    strings.TrimSpace(in.Title),
			Date:     date,
			Time:     DefaultTime,
			Location: strings.TrimSpace(in.Location),
			Category: domain.CategoryOr(in.Category, fallback),
			Priority: domain.Priority(strings.TrimSpace(in.Priority)),
			Notes:    strings.TrimSpace(in.Notes),
		}
		if t := strings.TrimSpace(in.Time); t != "" {
			if p.Time, err = domain.ParseTimeOfDay(t); err != nil {
				return nil, fmt.Errorf("plans[%d]: %w", i, err)
			}
		}
		if b := strings.TrimSpace(string(in.Budget)); b != "" {
			d, err := decimal.NewFromString(b)
			if err != nil {
				return nil, fmt.Errorf("plans[%d]: budget: %w", i, err)
			}
			p.Budget = decimal.NewNullDecimal(d)
		}
		plans = append(plans, p)
	}
	return plans, nil
}
