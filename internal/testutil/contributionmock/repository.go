package contributionmock

import (
	"context"

	domain "igia-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, c *domain.Contribution) error
	SaveFn                         func(ctx context.Context, c *domain.Contribution) error
	DeleteFn                       func(ctx context.Context, id uint64) error
	GetByContributionIDFn          func(ctx context.Context, contributionID string) (*domain.Contribution, error)
	GetByContributionIDForUpdateFn func(ctx context.Context, contributionID string) (*domain.Contribution, error)
	ListByInvestorFn               func(ctx context.Context, investorID uint64) ([]domain.Contribution, error)
	ListByCampaignFn               func(ctx context.Context, campaignID uint64) ([]domain.Contribution, error)
	ListByLoanCampaignFn           func(ctx context.Context, loanCampaignID uint64) ([]domain.Contribution, error)
	SumCompletedByCampaignFn       func(ctx context.Context, campaignID uint64) (decimal.Decimal, error)
	SumCompletedByLoanCampaignFn   func(ctx context.Context, loanCampaignID uint64) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Contribution) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Contribution) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByContributionID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	if m.GetByContributionIDFn != nil {
		return m.GetByContributionIDFn(ctx, contributionID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	if m.GetByContributionIDForUpdateFn != nil {
		return m.GetByContributionIDForUpdateFn(ctx, contributionID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.Contribution, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, nil
}

func (m *Repo) ListByCampaign(ctx context.Context, campaignID uint64) ([]domain.Contribution, error) {
	if m.ListByCampaignFn != nil {
		return m.ListByCampaignFn(ctx, campaignID)
	}
	return nil, nil
}

func (m *Repo) ListByLoanCampaign(ctx context.Context, loanCampaignID uint64) ([]domain.Contribution, error) {
	if m.ListByLoanCampaignFn != nil {
		return m.ListByLoanCampaignFn(ctx, loanCampaignID)
	}
	return nil, nil
}

func (m *Repo) SumCompletedByCampaign(ctx context.Context, campaignID uint64) (decimal.Decimal, error) {
	if m.SumCompletedByCampaignFn != nil {
		return m.SumCompletedByCampaignFn(ctx, campaignID)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumCompletedByLoanCampaign(ctx context.Context, loanCampaignID uint64) (decimal.Decimal, error) {
	if m.SumCompletedByLoanCampaignFn != nil {
		return m.SumCompletedByLoanCampaignFn(ctx, loanCampaignID)
	}
	return decimal.Zero, nil
}
