package withdrawalmock

import (
	"context"

	domain "igia-backend/internal/domain/withdrawal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	SaveFn                    func(ctx context.Context, r *domain.Request) error
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	GetPendingByProjectFn     func(ctx context.Context, projectID uint64) (*domain.Request, error)
	ListByEntrepreneurFn      func(ctx context.Context, entrepreneurID uint64) ([]domain.Request, error)
	ListByStatusFn            func(ctx context.Context, status domain.Status) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPendingByProject(ctx context.Context, projectID uint64) (*domain.Request, error) {
	if m.GetPendingByProjectFn != nil {
		return m.GetPendingByProjectFn(ctx, projectID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]domain.Request, error) {
	if m.ListByEntrepreneurFn != nil {
		return m.ListByEntrepreneurFn(ctx, entrepreneurID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Request, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}
