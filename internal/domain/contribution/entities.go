package contribution

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("contribution not found")
	ErrBothCampaigns     = errors.New("a contribution cannot target both a campaign and a loan campaign")
	ErrNoCampaign        = errors.New("a contribution must target a campaign or a loan campaign")
	ErrTypeMismatch      = errors.New("contribution type does not match its campaign")
	ErrInvalidAmount     = errors.New("contribution amount must be positive")
	ErrInvalidMethod     = errors.New("unknown payment method")
	ErrInvalidTransition = errors.New("invalid payment status transition")
	ErrCampaignInactive  = errors.New("campaign is not accepting contributions")
)

type Type string

const (
	TypeDonation Type = "donation"
	TypeLoan     Type = "loan"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodStripe PaymentMethod = "stripe"
	MethodPaypal PaymentMethod = "paypal"
	MethodMTN    PaymentMethod = "mtn"
	MethodOrange PaymentMethod = "orange"
	MethodOther  PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodStripe, MethodPaypal, MethodMTN, MethodOrange, MethodOther:
		return true
	}
	return false
}

// CanTransition allows pending -> completed|failed only; completed and failed are terminal.
func CanTransition(from, to PaymentStatus) bool {
	return from == StatusPending && (to == StatusCompleted || to == StatusFailed)
}

type Contribution struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	ContributionID   string          `gorm:"column:contribution_id;type:char(32);uniqueIndex;not null" json:"contribution_id"`
	InvestorID       *uint64         `gorm:"column:investor_id;index" json:"-"`
	CampaignID       *uint64         `gorm:"column:campaign_id;index" json:"-"`
	LoanCampaignID   *uint64         `gorm:"column:loan_campaign_id;index" json:"-"`
	ContributorName  string          `gorm:"column:contributor_name;size:150" json:"contributor_name"`
	ContributorEmail string          `gorm:"column:contributor_email;size:254" json:"contributor_email"`
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Type             Type            `gorm:"column:contribution_type;size:10;not null" json:"contribution_type"`
	PaymentMethod    PaymentMethod   `gorm:"column:payment_method;size:50;not null" json:"payment_method"`
	TransactionID    string          `gorm:"column:transaction_id;size:100" json:"transaction_id"`
	PaymentStatus    PaymentStatus   `gorm:"column:payment_status;size:20;not null;index" json:"payment_status"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Contribution) TableName() string { return "contributions" }

// Validate enforces the single-campaign link and the type that goes with it.
func (c *Contribution) Validate() error {
	switch {
	case c.CampaignID != nil && c.LoanCampaignID != nil:
		return ErrBothCampaigns
	case c.CampaignID == nil && c.LoanCampaignID == nil:
		return ErrNoCampaign
	case c.CampaignID != nil && c.Type != TypeDonation:
		return ErrTypeMismatch
	case c.LoanCampaignID != nil && c.Type != TypeLoan:
		return ErrTypeMismatch
	}
	if !c.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !c.PaymentMethod.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

func (c *Contribution) IsPaid() bool { return c.PaymentStatus == StatusCompleted }

// TypeFor returns the contribution type implied by the campaign kind.
func TypeFor(loan bool) Type {
	if loan {
		return TypeLoan
	}
	return TypeDonation
}

// InvestorStats summarises an investor's completed contributions.
type InvestorStats struct {
	Count          int64           `json:"count"`
	CompletedCount int64           `json:"completed_count"`
	TotalDonated   decimal.Decimal `json:"total_donated"`
	TotalLent      decimal.Decimal `json:"total_lent"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
}

func (s *InvestorStats) Add(c *Contribution) {
	s.Count++
	if !c.IsPaid() {
		return
	}
	s.CompletedCount++
	if c.Type == TypeLoan {
		s.TotalLent = s.TotalLent.Add(c.Amount)
	} else {
		s.TotalDonated = s.TotalDonated.Add(c.Amount)
	}
	s.TotalInvested = s.TotalInvested.Add(c.Amount)
}
