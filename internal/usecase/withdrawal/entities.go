package withdrawal

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestInput struct {
	ProjectID string          `json:"project_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

type RequestDTO struct {
	RequestID   string          `json:"request_id"`
	ProjectID   string          `json:"project_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}
