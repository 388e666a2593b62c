package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/google/uuid"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one plan.
var ErrAmbiguousID = errors.New("id prefix matches more than one plan")

type planService struct {
	plans    repository.PlanRepo
	trip     domain.TripRange
	observer UseCaseObserver
	now      func() time.Time
}

func NewPlanService(
	plans repository.PlanRepo,
	trip domain.TripRange,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		plans:    plans,
		trip:     trip,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *planService) Trip() domain.TripRange { return s.trip }

func (s *planService) Provision(ctx context.Context) (info *repository.Provisioned, err error) {
	defer s.observe(ctx, "provision", time.Now(), map[string]any{}, &err)
	return s.plans.Provision(ctx)
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.LoadAll(ctx)
}

func (s *planService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

// Resolve finds a plan by full ID or unique ID prefix.
func (s *planService) Resolve(ctx context.Context, idOrPrefix string) (*domain.Plan, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", repository.ErrPlanNotFound)
	}
	plans, err := s.plans.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Plan
	for _, p := range plans {
		if p.ID == idOrPrefix {
			return p, nil
		}
		if strings.HasPrefix(p.ID, idOrPrefix) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d plans", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

// Create assigns ID and Created, validates, and appends the plan.
func (s *planService) Create(ctx context.Context, p *domain.Plan) (err error) {
	fields := map[string]any{"title": p.Title}
	defer s.observe(ctx, "create-plan", time.Now(), fields, &err)

	if err = p.Validate(s.trip); err != nil {
		return err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating plan id: %w", err)
	}
	p.ID = id.String()
	p.Created = s.now().UTC().Truncate(time.Second)
	fields["plan_id"] = p.ID
	return s.plans.Append(ctx, p)
}

// Update overwrites the plan with p.ID, keeping the stored Created.
func (s *planService) Update(ctx context.Context, p *domain.Plan) (err error) {
	fields := map[string]any{"plan_id": p.ID}
	defer s.observe(ctx, "update-plan", time.Now(), fields, &err)

	if err = p.Validate(s.trip); err != nil {
		return err
	}
	current, err := s.plans.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Created = current.Created
	return s.plans.UpdateByID(ctx, p)
}

// UpdateAt overwrites the plan at a display index, keeping its ID and
// Created.
func (s *planService) UpdateAt(ctx context.Context, index int, p *domain.Plan) (err error) {
	fields := map[string]any{"index": index}
	defer s.observe(ctx, "update-plan", time.Now(), fields, &err)

	if err = p.Validate(s.trip); err != nil {
		return err
	}
	plans, err := s.plans.LoadAll(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(plans) {
		return fmt.Errorf("%w: plan index %d out of range", repository.ErrWrite, index)
	}
	p.ID = plans[index].ID
	p.Created = plans[index].Created
	fields["plan_id"] = p.ID
	return s.plans.UpdateAt(ctx, index, p)
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete-plan", time.Now(), map[string]any{"plan_id": id}, &err)
	return s.plans.DeleteByID(ctx, id)
}

func (s *planService) DeleteAt(ctx context.Context, index int) (err error) {
	defer s.observe(ctx, "delete-plan", time.Now(), map[string]any{"index": index}, &err)
	return s.plans.DeleteAt(ctx, index)
}

func (s *planService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *errp == nil,
		Err:       *errp,
		Fields:    fields,
	})
}
