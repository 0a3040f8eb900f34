package paymentmock

import (
	"context"

	domain "igia-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Payment) error
	SaveFn                    func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetLatestByProjectFn      func(ctx context.Context, projectID uint64, typ domain.Type) (*domain.Payment, error)
	ListAwaitingValidationFn  func(ctx context.Context) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLatestByProject(ctx context.Context, projectID uint64, typ domain.Type) (*domain.Payment, error) {
	if m.GetLatestByProjectFn != nil {
		return m.GetLatestByProjectFn(ctx, projectID, typ)
	}
	return nil, context.Canceled
}

func (m *Repo) ListAwaitingValidation(ctx context.Context) ([]domain.Payment, error) {
	if m.ListAwaitingValidationFn != nil {
		return m.ListAwaitingValidationFn(ctx)
	}
	return nil, nil
}

var _ domain.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo is a function-backed mock that satisfies domain.SubscriptionRepository.
type SubscriptionRepo struct {
	CreateFn                  func(ctx context.Context, p *domain.IntermediairePayment) error
	SaveFn                    func(ctx context.Context, p *domain.IntermediairePayment) error
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.IntermediairePayment, error)
	ListPendingFn             func(ctx context.Context) ([]domain.IntermediairePayment, error)
}

func (m *SubscriptionRepo) Create(ctx context.Context, p *domain.IntermediairePayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *SubscriptionRepo) Save(ctx context.Context, p *domain.IntermediairePayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *SubscriptionRepo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.IntermediairePayment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *SubscriptionRepo) ListPending(ctx context.Context) ([]domain.IntermediairePayment, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, nil
}
