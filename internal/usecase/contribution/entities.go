package contribution

import (
	"time"

	domain "igia-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
)

// CreateInput targets exactly one of CampaignID or LoanCampaignID (public ids).
type CreateInput struct {
	CampaignID       string          `json:"campaign_id"`
	LoanCampaignID   string          `json:"loan_campaign_id"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"contribution_type"` // optional; derived from the campaign kind
	PaymentMethod    string          `json:"payment_method"`
	TransactionID    string          `json:"transaction_id"`
	PaymentStatus    string          `json:"payment_status"` // staff only; others always start pending
	ContributorName  string          `json:"contributor_name"`
	ContributorEmail string          `json:"contributor_email"`
}

type ContributionDTO struct {
	ContributionID   string          `json:"contribution_id"`
	CampaignID       string          `json:"campaign_id,omitempty"`
	LoanCampaignID   string          `json:"loan_campaign_id,omitempty"`
	ContributorName  string          `json:"contributor_name"`
	ContributorEmail string          `json:"contributor_email"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"contribution_type"`
	PaymentMethod    string          `json:"payment_method"`
	TransactionID    string          `json:"transaction_id"`
	PaymentStatus    string          `json:"payment_status"`
	ProjectShare     decimal.Decimal `json:"project_share"` // % of the project target this contribution covers
	CreatedAt        time.Time       `json:"created_at"`
}

// CampaignTotalsDTO is returned alongside a status change so callers see the refreshed cache.
type CampaignTotalsDTO struct {
	CollectedAmount  decimal.Decimal `json:"collected_amount"`
	Progress         decimal.Decimal `json:"progress"`
	ProjectCollected decimal.Decimal `json:"project_collected"`
	GoalReached      bool            `json:"goal_reached"`
}

type ResultDTO struct {
	Contribution ContributionDTO    `json:"contribution"`
	Totals       *CampaignTotalsDTO `json:"totals,omitempty"`
}

type ListDTO struct {
	Items []ContributionDTO     `json:"items"`
	Stats *domain.InvestorStats `json:"stats,omitempty"`
}
