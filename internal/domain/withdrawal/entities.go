package withdrawal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("withdrawal request not found")
	ErrInvalidAmount     = errors.New("withdrawal amount must be positive")
	ErrExceedsCollected  = errors.New("withdrawal amount exceeds the collected amount")
	ErrPendingExists     = errors.New("a withdrawal request is already pending for this project")
	ErrInvalidTransition = errors.New("invalid withdrawal status transition")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusPaid
	}
	return false
}

type Request struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	RequestID      string          `gorm:"column:request_id;type:char(32);uniqueIndex;not null" json:"request_id"`
	EntrepreneurID uint64          `gorm:"column:entrepreneur_id;not null;index" json:"-"`
	ProjectID      uint64          `gorm:"column:project_id;not null;index" json:"-"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Reason         string          `gorm:"column:reason;type:text" json:"reason"`
	Status         Status          `gorm:"column:status;size:20;not null;index" json:"status"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ProcessedAt    *time.Time      `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

func (Request) TableName() string { return "withdrawal_requests" }

func (r *Request) IsEditable() bool { return r.Status == StatusPending }

// CheckAmount validates a requested amount against what the project collected.
func CheckAmount(amount, collected decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(collected) {
		return ErrExceedsCollected
	}
	return nil
}
