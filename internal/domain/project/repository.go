package project

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*Project, error)
	GetByProjectID(ctx context.Context, projectID string) (*Project, error)
	// Row-locking reads; call them inside a unit of work.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Project, error)
	GetByProjectIDForUpdate(ctx context.Context, projectID string) (*Project, error)
	UpdateCollected(ctx context.Context, id uint64, amount decimal.Decimal) error
	ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]Project, error)
	ListBySubmitter(ctx context.Context, submitterID uint64) ([]Project, error)
	ListByStatus(ctx context.Context, status Status) ([]Project, error)
}
