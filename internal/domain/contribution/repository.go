package contribution

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	Save(ctx context.Context, c *Contribution) error
	Delete(ctx context.Context, id uint64) error
	GetByContributionID(ctx context.Context, contributionID string) (*Contribution, error)
	GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*Contribution, error)
	ListByInvestor(ctx context.Context, investorID uint64) ([]Contribution, error)
	ListByCampaign(ctx context.Context, campaignID uint64) ([]Contribution, error)
	ListByLoanCampaign(ctx context.Context, loanCampaignID uint64) ([]Contribution, error)
	// Sums over payment_status = completed only.
	SumCompletedByCampaign(ctx context.Context, campaignID uint64) (decimal.Decimal, error)
	SumCompletedByLoanCampaign(ctx context.Context, loanCampaignID uint64) (decimal.Decimal, error)
}
