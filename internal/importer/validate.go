package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/shopspring/decimal"
)

// Validate checks every plan in the file against the trip and returns all
// problems found, each prefixed with the plan's position.
func Validate(f *ImportFile, trip domain.TripRange) []error {
	var errs []error
	if len(f.Plans) == 0 {
		return append(errs, fmt.Errorf("no plans in import file"))
	}
	for i, p := range f.Plans {
		errs = append(errs, validatePlan(fmt.Sprintf("plans[%d]", i), &p, trip)...)
	}
	return errs
}

func validatePlan(path string, p *PlanImport, trip domain.TripRange) []error {
	var errs []error

	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", path))
	}
	if strings.TrimSpace(p.Date) == "" {
		errs = append(errs, fmt.Errorf("%s.date is required", path))
	} else if d, err := domain.ParseDate(strings.TrimSpace(p.Date)); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", path, p.Date))
	} else if !trip.Contains(d) {
		errs = append(errs, fmt.Errorf("%s.date %s is outside the trip (%s to %s)", path, p.Date,
			trip.Start.Format(domain.DateLayout), trip.End.Format(domain.DateLayout)))
	}
	if t := strings.TrimSpace(p.Time); t != "" {
		if _, err := domain.ParseTimeOfDay(t); err != nil {
			errs = append(errs, fmt.Errorf("%s.time: invalid time %q (expected HH:MM)", path, p.Time))
		}
	}
	if b := strings.TrimSpace(string(p.Budget)); b != "" {
		d, err := decimal.NewFromString(b)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s.budget: invalid amount %q", path, p.Budget))
		case d.IsNegative():
			errs = append(errs, fmt.Errorf("%s.budget must not be negative", path))
		}
	}
	if !domain.ValidPriorities[strings.TrimSpace(p.Priority)] {
		errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", path, p.Priority))
	}

	return errs
}
