package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitInput.EntrepreneurID is required when an intermediaire submits on someone's behalf.
type SubmitInput struct {
	EntrepreneurID   string          `json:"entrepreneur_id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	Deadline         *time.Time      `json:"deadline"`
}

// UpdateInput applies only the non-nil fields.
type UpdateInput struct {
	Title            *string          `json:"title"`
	ShortDescription *string          `json:"short_description"`
	Description      *string          `json:"description"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	Deadline         *time.Time       `json:"deadline"`
}

type ProjectDTO struct {
	ProjectID        string          `json:"project_id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	CollectedAmount  decimal.Decimal `json:"collected_amount"`
	Progress         decimal.Decimal `json:"progress"`
	Status           string          `json:"status"`
	Editable         bool            `json:"editable"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type PaymentDTO struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"payment_type"`
}

type SubmitDTO struct {
	Project ProjectDTO `json:"project"`
	Payment PaymentDTO `json:"payment"`
}
