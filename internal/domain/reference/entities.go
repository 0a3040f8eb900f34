package reference

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrCountryNotFound = errors.New("country not found")

type Currency struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	Code             string          `gorm:"column:code;size:10;uniqueIndex;not null" json:"code"`
	Name             string          `gorm:"column:name;size:100;not null" json:"name"`
	Symbol           string          `gorm:"column:symbol;size:10" json:"symbol"`
	ExchangeRateToUS decimal.Decimal `gorm:"column:exchange_rate_to_usd;type:decimal(12,4);not null" json:"exchange_rate_to_usd"`
	Active           bool            `gorm:"column:active;not null" json:"active"`
}

func (Currency) TableName() string { return "currencies" }

type Region struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	Name   string `gorm:"column:name;size:100;uniqueIndex;not null" json:"name"`
	Active bool   `gorm:"column:active;not null" json:"active"`
}

func (Region) TableName() string { return "regions" }

// Country carries the fees charged to users registered in it.
type Country struct {
	ID                   uint64          `gorm:"primaryKey;column:id" json:"-"`
	RegionID             *uint64         `gorm:"column:region_id;index" json:"-"`
	CurrencyID           uint64          `gorm:"column:currency_id;not null" json:"-"`
	Currency             *Currency       `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	Name                 string          `gorm:"column:name;size:150;uniqueIndex;not null" json:"name"`
	Code                 string          `gorm:"column:code;size:5;uniqueIndex;not null" json:"code"`
	Active               bool            `gorm:"column:active;not null" json:"active"`
	ProjectSubmissionFee decimal.Decimal `gorm:"column:project_submission_fee;type:decimal(10,2);not null" json:"project_submission_fee"`
	IntermediaireFee     decimal.Decimal `gorm:"column:intermediaire_fee;type:decimal(10,2);not null" json:"intermediaire_fee"`
	CommissionRate       decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2);not null" json:"commission_rate"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Country) TableName() string { return "countries" }

// DefaultCommissionRate applies when a country is created without one.
var DefaultCommissionRate = decimal.RequireFromString("6.9")
