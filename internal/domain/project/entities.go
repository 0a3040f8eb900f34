package project

import (
	"errors"
	"time"

	"igia-backend/internal/domain/funding"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("project not found")
	ErrInvalidTransition = errors.New("invalid project status transition")
	ErrCountryRequired   = errors.New("a country is required to submit a project")
	ErrNotOwner          = errors.New("project does not belong to this user")
	ErrNotEditable       = errors.New("project can no longer be modified")
	ErrInvalidTarget     = errors.New("target amount must be positive")
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPending        Status = "pending"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusCompleted      Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusPending},
	StatusPending:        {StatusApproved, StatusRejected},
	StatusApproved:       {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Project struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	ProjectID        string          `gorm:"column:project_id;type:char(32);uniqueIndex;not null" json:"project_id"`
	EntrepreneurID   uint64          `gorm:"column:entrepreneur_id;not null;index" json:"-"`
	SubmittedByID    *uint64         `gorm:"column:submitted_by_id;index" json:"-"`
	CountryID        *uint64         `gorm:"column:country_id" json:"-"`
	Title            string          `gorm:"column:title;size:255;not null" json:"title"`
	ShortDescription string          `gorm:"column:short_description;size:300" json:"short_description"`
	Description      string          `gorm:"column:description;type:text;not null" json:"description"`
	TargetAmount     decimal.Decimal `gorm:"column:target_amount;type:decimal(12,2);not null" json:"target_amount"`
	CollectedAmount  decimal.Decimal `gorm:"column:collected_amount;type:decimal(12,2);not null" json:"collected_amount"`
	Status           Status          `gorm:"column:status;size:20;not null;index" json:"status"`
	Deadline         *time.Time      `gorm:"column:deadline" json:"deadline,omitempty"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) Progress() decimal.Decimal { return funding.Progress(p.CollectedAmount, p.TargetAmount) }

// Editable reports whether the owner may still change or delete the project.
func (p *Project) Editable() bool {
	return p.Status == StatusPendingPayment || p.Status == StatusPending || p.Status == StatusRejected
}

// Stats aggregates an entrepreneur's projects.
type Stats struct {
	Total          int64           `json:"total"`
	PendingPayment int64           `json:"pending_payment"`
	Pending        int64           `json:"pending"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	Completed      int64           `json:"completed"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalTarget    decimal.Decimal `json:"total_target"`
	Progress       decimal.Decimal `json:"progress"`
}

func (s *Stats) Add(p *Project) {
	s.Total++
	switch p.Status {
	case StatusPendingPayment:
		s.PendingPayment++
	case StatusPending:
		s.Pending++
	case StatusApproved:
		s.Approved++
	case StatusRejected:
		s.Rejected++
	case StatusCompleted:
		s.Completed++
	}
	s.TotalCollected = s.TotalCollected.Add(p.CollectedAmount)
	s.TotalTarget = s.TotalTarget.Add(p.TargetAmount)
	s.Progress = funding.Progress(s.TotalCollected, s.TotalTarget)
}
