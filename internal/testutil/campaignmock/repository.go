package campaignmock

import (
	"context"
	"time"

	domain "igia-backend/internal/domain/campaign"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, c *domain.Campaign) error
	SaveFn                     func(ctx context.Context, c *domain.Campaign) error
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Campaign, error)
	GetByCampaignIDFn          func(ctx context.Context, campaignID string) (*domain.Campaign, error)
	GetByIDForUpdateFn         func(ctx context.Context, id uint64) (*domain.Campaign, error)
	GetByCampaignIDForUpdateFn func(ctx context.Context, campaignID string) (*domain.Campaign, error)
	ListByProjectFn            func(ctx context.Context, projectID uint64) ([]domain.Campaign, error)
	ListActiveFn               func(ctx context.Context, now time.Time) ([]domain.Campaign, error)
	SumCollectedByProjectFn    func(ctx context.Context, projectID uint64) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Campaign) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Campaign) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCampaignID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	if m.GetByCampaignIDFn != nil {
		return m.GetByCampaignIDFn(ctx, campaignID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Campaign, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCampaignIDForUpdate(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	if m.GetByCampaignIDForUpdateFn != nil {
		return m.GetByCampaignIDForUpdateFn(ctx, campaignID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByProject(ctx context.Context, projectID uint64) ([]domain.Campaign, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *Repo) ListActive(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, now)
	}
	return nil, nil
}

func (m *Repo) SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error) {
	if m.SumCollectedByProjectFn != nil {
		return m.SumCollectedByProjectFn(ctx, projectID)
	}
	return decimal.Zero, nil
}

var _ domain.LoanRepository = (*LoanRepo)(nil)

// LoanRepo is a function-backed mock that satisfies domain.LoanRepository.
type LoanRepo struct {
	CreateFn                       func(ctx context.Context, l *domain.LoanCampaign) error
	SaveFn                         func(ctx context.Context, l *domain.LoanCampaign) error
	GetByIDFn                      func(ctx context.Context, id uint64) (*domain.LoanCampaign, error)
	GetByLoanCampaignIDFn          func(ctx context.Context, loanCampaignID string) (*domain.LoanCampaign, error)
	GetByIDForUpdateFn             func(ctx context.Context, id uint64) (*domain.LoanCampaign, error)
	GetByLoanCampaignIDForUpdateFn func(ctx context.Context, loanCampaignID string) (*domain.LoanCampaign, error)
	ListByProjectFn                func(ctx context.Context, projectID uint64) ([]domain.LoanCampaign, error)
	ListActiveFn                   func(ctx context.Context, now time.Time) ([]domain.LoanCampaign, error)
	SumCollectedByProjectFn        func(ctx context.Context, projectID uint64) (decimal.Decimal, error)
}

func (m *LoanRepo) Create(ctx context.Context, l *domain.LoanCampaign) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *LoanRepo) Save(ctx context.Context, l *domain.LoanCampaign) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *LoanRepo) GetByID(ctx context.Context, id uint64) (*domain.LoanCampaign, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) GetByLoanCampaignID(ctx context.Context, loanCampaignID string) (*domain.LoanCampaign, error) {
	if m.GetByLoanCampaignIDFn != nil {
		return m.GetByLoanCampaignIDFn(ctx, loanCampaignID)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanCampaign, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) GetByLoanCampaignIDForUpdate(ctx context.Context, loanCampaignID string) (*domain.LoanCampaign, error) {
	if m.GetByLoanCampaignIDForUpdateFn != nil {
		return m.GetByLoanCampaignIDForUpdateFn(ctx, loanCampaignID)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) ListByProject(ctx context.Context, projectID uint64) ([]domain.LoanCampaign, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *LoanRepo) ListActive(ctx context.Context, now time.Time) ([]domain.LoanCampaign, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, now)
	}
	return nil, nil
}

func (m *LoanRepo) SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error) {
	if m.SumCollectedByProjectFn != nil {
		return m.SumCollectedByProjectFn(ctx, projectID)
	}
	return decimal.Zero, nil
}
