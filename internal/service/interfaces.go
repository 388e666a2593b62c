package service

import (
	"context"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
)

type PlanService interface {
	Trip() domain.TripRange
	Provision(ctx context.Context) (*repository.Provisioned, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	Resolve(ctx context.Context, idOrPrefix string) (*domain.Plan, error)
	Create(ctx context.Context, p *domain.Plan) error
	Update(ctx context.Context, p *domain.Plan) error
	UpdateAt(ctx context.Context, index int, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
	DeleteAt(ctx context.Context, index int) error
}
