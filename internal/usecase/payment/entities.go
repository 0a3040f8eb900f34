package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProofInput struct {
	Method          string `json:"payment_method"`
	TransactionCode string `json:"transaction_code"`
	ProofURL        string `json:"proof_url"`
}

type PaymentDTO struct {
	PaymentID       string          `json:"payment_id"`
	ProjectID       string          `json:"project_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"payment_type"`
	Method          string          `json:"payment_method"`
	TransactionCode string          `json:"transaction_code"`
	ProofURL        string          `json:"proof_url"`
	IsSuccessful    bool            `json:"is_successful"`
	CreatedAt       time.Time       `json:"created_at"`
}

type SubscriptionDTO struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	ProofURL  string          `json:"proof_url"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
