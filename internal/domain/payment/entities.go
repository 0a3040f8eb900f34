package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrAlreadyValidated = errors.New("payment already validated")
	ErrProofRequired    = errors.New("payment proof is required")
	ErrInvalidMethod    = errors.New("unknown payment method")
	ErrCountryRequired  = errors.New("a country is required to compute the fee")
)

type Type string

const (
	TypeProjectSubmission         Type = "project_submission"
	TypeIntermediaireSubscription Type = "intermediaire_subscription"
)

type Method string

const (
	MethodMobileMoney Method = "mobile_money"
	MethodStripe      Method = "stripe"
	MethodPaypal      Method = "paypal"
)

func (m Method) Valid() bool {
	return m == MethodMobileMoney || m == MethodStripe || m == MethodPaypal
}

// Payment is a fee paid to the platform, confirmed by staff from the uploaded proof.
type Payment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string          `gorm:"column:payment_id;type:char(32);uniqueIndex;not null" json:"payment_id"`
	UserID          uint64          `gorm:"column:user_id;not null;index" json:"-"`
	ProjectID       *uint64         `gorm:"column:project_id;index" json:"-"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	CurrencyID      *uint64         `gorm:"column:currency_id" json:"-"`
	CountryID       *uint64         `gorm:"column:country_id" json:"-"`
	Type            Type            `gorm:"column:payment_type;size:50;not null" json:"payment_type"`
	Method          Method          `gorm:"column:payment_method;size:20" json:"payment_method"`
	TransactionCode string          `gorm:"column:transaction_code;size:255" json:"transaction_code"`
	ProofURL        string          `gorm:"column:proof_url;type:text" json:"proof_url"`
	IsSuccessful    bool            `gorm:"column:is_successful;not null;index" json:"is_successful"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Payment) TableName() string { return "payments" }

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionValidated SubscriptionStatus = "validated"
)

// IntermediairePayment is an intermediaire's subscription payment.
type IntermediairePayment struct {
	ID              uint64             `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string             `gorm:"column:payment_id;type:char(32);uniqueIndex;not null" json:"payment_id"`
	IntermediaireID uint64             `gorm:"column:intermediaire_id;not null;index" json:"-"`
	Amount          decimal.Decimal    `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	CurrencyID      *uint64            `gorm:"column:currency_id" json:"-"`
	ProofURL        string             `gorm:"column:proof_url;type:text;not null" json:"proof_url"`
	Status          SubscriptionStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (IntermediairePayment) TableName() string { return "intermediaire_payments" }
