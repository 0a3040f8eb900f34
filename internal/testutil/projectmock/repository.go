package projectmock

import (
	"context"

	domain "igia-backend/internal/domain/project"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Project) error
	SaveFn                    func(ctx context.Context, p *domain.Project) error
	DeleteFn                  func(ctx context.Context, id uint64) error
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Project, error)
	GetByProjectIDFn          func(ctx context.Context, projectID string) (*domain.Project, error)
	GetByIDForUpdateFn        func(ctx context.Context, id uint64) (*domain.Project, error)
	GetByProjectIDForUpdateFn func(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateCollectedFn         func(ctx context.Context, id uint64, amount decimal.Decimal) error
	ListByEntrepreneurFn      func(ctx context.Context, entrepreneurID uint64) ([]domain.Project, error)
	ListBySubmitterFn         func(ctx context.Context, submitterID uint64) ([]domain.Project, error)
	ListByStatusFn            func(ctx context.Context, status domain.Status) ([]domain.Project, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Project) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDFn != nil {
		return m.GetByProjectIDFn(ctx, projectID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Project, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDForUpdateFn != nil {
		return m.GetByProjectIDForUpdateFn(ctx, projectID)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateCollected(ctx context.Context, id uint64, amount decimal.Decimal) error {
	if m.UpdateCollectedFn != nil {
		return m.UpdateCollectedFn(ctx, id, amount)
	}
	return nil
}

func (m *Repo) ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]domain.Project, error) {
	if m.ListByEntrepreneurFn != nil {
		return m.ListByEntrepreneurFn(ctx, entrepreneurID)
	}
	return nil, nil
}

func (m *Repo) ListBySubmitter(ctx context.Context, submitterID uint64) ([]domain.Project, error) {
	if m.ListBySubmitterFn != nil {
		return m.ListBySubmitterFn(ctx, submitterID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Project, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}
