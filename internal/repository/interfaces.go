package repository

import (
	"context"

	"github.com/alexanderramin/itinerary/internal/domain"
)

// PlanRepo is the store adapter for plans. Index-based methods take the
// zero-based position of a plan in LoadAll's result.
type PlanRepo interface {
	Provision(ctx context.Context) (*Provisioned, error)
	LoadAll(ctx context.Context) ([]*domain.Plan, error)
	Append(ctx context.Context, p *domain.Plan) error
	UpdateAt(ctx context.Context, index int, p *domain.Plan) error
	DeleteAt(ctx context.Context, index int) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	UpdateByID(ctx context.Context, p *domain.Plan) error
	DeleteByID(ctx context.Context, id string) error
}

var _ PlanRepo = (*SheetPlanRepo)(nil)
