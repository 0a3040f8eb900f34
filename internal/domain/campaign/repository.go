package campaign

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	Save(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uint64) (*Campaign, error)
	GetByCampaignID(ctx context.Context, campaignID string) (*Campaign, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Campaign, error)
	GetByCampaignIDForUpdate(ctx context.Context, campaignID string) (*Campaign, error)
	ListByProject(ctx context.Context, projectID uint64) ([]Campaign, error)
	ListActive(ctx context.Context, now time.Time) ([]Campaign, error)
	SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error)
}

type LoanRepository interface {
	Create(ctx context.Context, l *LoanCampaign) error
	Save(ctx context.Context, l *LoanCampaign) error
	GetByID(ctx context.Context, id uint64) (*LoanCampaign, error)
	GetByLoanCampaignID(ctx context.Context, loanCampaignID string) (*LoanCampaign, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*LoanCampaign, error)
	GetByLoanCampaignIDForUpdate(ctx context.Context, loanCampaignID string) (*LoanCampaign, error)
	ListByProject(ctx context.Context, projectID uint64) ([]LoanCampaign, error)
	ListActive(ctx context.Context, now time.Time) ([]LoanCampaign, error)
	SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error)
}
