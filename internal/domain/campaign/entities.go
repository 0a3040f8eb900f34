package campaign

import (
	"errors"
	"time"

	"igia-backend/internal/domain/funding"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("campaign not found")
	ErrInvalidTransition = errors.New("invalid campaign status transition")
	ErrProjectNotOpen    = errors.New("campaigns can only be opened on approved projects")
	ErrInvalidDates      = errors.New("end date must be after start date")
	ErrInvalidGoal       = errors.New("goal amount must be positive")
	ErrInvalidLoanTerms  = errors.New("loan needs a non-negative rate and a repayment duration")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var transitions = map[Status][]Status{
	StatusDraft:  {StatusActive},
	StatusActive: {StatusPaused, StatusCompleted, StatusFailed},
	StatusPaused: {StatusActive, StatusCompleted, StatusFailed},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Campaign is a donation drive against a project.
type Campaign struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	CampaignID      string          `gorm:"column:campaign_id;type:char(32);uniqueIndex;not null" json:"campaign_id"`
	ProjectID       uint64          `gorm:"column:project_id;not null;index" json:"-"`
	CreatedByID     *uint64         `gorm:"column:created_by_id" json:"-"`
	Title           string          `gorm:"column:title;size:255;not null" json:"title"`
	Description     string          `gorm:"column:description;type:text" json:"description"`
	GoalAmount      decimal.Decimal `gorm:"column:goal_amount;type:decimal(12,2);not null" json:"goal_amount"`
	CollectedAmount decimal.Decimal `gorm:"column:collected_amount;type:decimal(12,2);not null" json:"collected_amount"`
	Status          Status          `gorm:"column:status;size:20;not null;index" json:"status"`
	StartDate       time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate         *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
	GoalReachedAt   *time.Time      `gorm:"column:goal_reached_at" json:"goal_reached_at,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) Progress() decimal.Decimal { return funding.Progress(c.CollectedAmount, c.GoalAmount) }
func (c *Campaign) IsActive(now time.Time) bool { return isActive(c.Status, c.EndDate, now) }
func (c *Campaign) RemainingDays(now time.Time) *int {
	return remainingDays(c.EndDate, now)
}

// LoanCampaign is an interest-bearing drive; contributions are loans repaid over RepaymentDuration months.
type LoanCampaign struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanCampaignID    string          `gorm:"column:loan_campaign_id;type:char(32);uniqueIndex;not null" json:"loan_campaign_id"`
	ProjectID         uint64          `gorm:"column:project_id;not null;index" json:"-"`
	CreatedByID       *uint64         `gorm:"column:created_by_id" json:"-"`
	Title             string          `gorm:"column:title;size:255;not null" json:"title"`
	Description       string          `gorm:"column:description;type:text" json:"description"`
	GoalAmount        decimal.Decimal `gorm:"column:goal_amount;type:decimal(12,2);not null" json:"goal_amount"`
	CollectedAmount   decimal.Decimal `gorm:"column:collected_amount;type:decimal(12,2);not null" json:"collected_amount"`
	InterestRate      decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	RepaymentDuration uint            `gorm:"column:repayment_duration;not null" json:"repayment_duration"`
	Status            Status          `gorm:"column:status;size:20;not null;index" json:"status"`
	StartDate         time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate           *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
	GoalReachedAt     *time.Time      `gorm:"column:goal_reached_at" json:"goal_reached_at,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (LoanCampaign) TableName() string { return "loan_campaigns" }

func (l *LoanCampaign) Progress() decimal.Decimal { return funding.Progress(l.CollectedAmount, l.GoalAmount) }
func (l *LoanCampaign) IsActive(now time.Time) bool { return isActive(l.Status, l.EndDate, now) }
func (l *LoanCampaign) RemainingDays(now time.Time) *int {
	return remainingDays(l.EndDate, now)
}

// TotalInterest is goal * rate / 100.
func (l *LoanCampaign) TotalInterest() decimal.Decimal {
	return l.GoalAmount.Mul(l.InterestRate).Div(decimal.NewFromInt(100)).Round(2)
}

func isActive(s Status, end *time.Time, now time.Time) bool {
	return s == StatusActive && (end == nil || end.After(now))
}

func remainingDays(end *time.Time, now time.Time) *int {
	if end == nil {
		return nil
	}
	days := int(end.Sub(now) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return &days
}

// ValidDates rejects an end date that is not after the start date.
func ValidDates(start time.Time, end *time.Time) bool {
	return end == nil || end.After(start)
}
