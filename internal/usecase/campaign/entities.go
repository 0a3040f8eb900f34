package campaign

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	ProjectID   string          `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	GoalAmount  decimal.Decimal `json:"goal_amount"`
	StartDate   *time.Time      `json:"start_date"` // defaults to now
	EndDate     *time.Time      `json:"end_date"`
	Activate    bool            `json:"activate"` // open immediately instead of draft
}

type CreateLoanInput struct {
	CreateInput
	InterestRate      decimal.Decimal `json:"interest_rate"`
	RepaymentDuration uint            `json:"repayment_duration"`
}

type CampaignDTO struct {
	CampaignID      string          `json:"campaign_id"`
	ProjectID       string          `json:"project_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	GoalAmount      decimal.Decimal `json:"goal_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	Progress        decimal.Decimal `json:"progress"`
	Status          string          `json:"status"`
	IsActive        bool            `json:"is_active"`
	RemainingDays   *int            `json:"remaining_days,omitempty"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	GoalReachedAt   *time.Time      `json:"goal_reached_at,omitempty"`
}

type LoanCampaignDTO struct {
	LoanCampaignID    string          `json:"loan_campaign_id"`
	ProjectID         string          `json:"project_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	GoalAmount        decimal.Decimal `json:"goal_amount"`
	CollectedAmount   decimal.Decimal `json:"collected_amount"`
	Progress          decimal.Decimal `json:"progress"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	RepaymentDuration uint            `json:"repayment_duration"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	Status            string          `json:"status"`
	IsActive          bool            `json:"is_active"`
	RemainingDays     *int            `json:"remaining_days,omitempty"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	GoalReachedAt     *time.Time      `json:"goal_reached_at,omitempty"`
}

type ProjectCampaignsDTO struct {
	Campaigns     []CampaignDTO     `json:"campaigns"`
	LoanCampaigns []LoanCampaignDTO `json:"loan_campaigns"`
}
