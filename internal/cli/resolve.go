package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
)

// planTarget is how a command names a plan: an ID (or unique prefix) or a
// display index from "plans list".
type planTarget struct {
	id       string
	index    int
	useIndex bool
}

func (t planTarget) validate() error {
	switch {
	case t.useIndex && t.id != "":
		return fmt.Errorf("give either an ID or --index, not both")
	case !t.useIndex && t.id == "":
		return fmt.Errorf("plan ID or --index is required")
	case t.useIndex && t.index < 0:
		return fmt.Errorf("--index must not be negative")
	}
	return nil
}

// resolvePlan returns the targeted plan. For index targets the index is
// checked against the current plan list.
func resolvePlan(ctx context.Context, plans service.PlanService, t planTarget) (*domain.Plan, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	if !t.useIndex {
		return plans.Resolve(ctx, t.id)
	}
	all, err := plans.List(ctx)
	if err != nil {
		return nil, err
	}
	if t.index >= len(all) {
		return nil, fmt.Errorf("%w: no plan at index %d (%d plans)", repository.ErrPlanNotFound, t.index, len(all))
	}
	return all[t.index], nil
}
