package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeProjectValidated     Type = "project_validated"
	TypeProjectRejected      Type = "project_rejected"
	TypeProjectUpdate        Type = "project_update"
	TypeProjectDeleted       Type = "project_deleted"
	TypeCampaignContribution Type = "campaign_contribution"
	TypeCampaignGoalReached  Type = "campaign_goal_reached"
	TypeLoanContribution     Type = "loan_contribution"
	TypeIntermediarySubmit   Type = "intermediary_submission"
	TypePaymentValidated     Type = "payment_validated"
	TypePaymentFailed        Type = "payment_failed"
	TypeWithdrawalProcessed  Type = "withdrawal_processed"
	TypeAdminMessage         Type = "admin_message"
	TypeGeneral              Type = "general"
)

const (
	shortMessageLen = 50
	defaultBgColor  = "bg-dark"
)

type Notification struct {
	ID                    uint64     `gorm:"primaryKey;column:id" json:"-"`
	NotificationID        string     `gorm:"column:notification_id;type:char(32);uniqueIndex;not null" json:"notification_id"`
	RecipientID           uint64     `gorm:"column:recipient_id;not null;index" json:"-"`
	SenderID              *uint64    `gorm:"column:sender_id" json:"-"`
	Type                  Type       `gorm:"column:type;size:50;not null" json:"type"`
	Title                 string     `gorm:"column:title;size:255;not null" json:"title"`
	Message               string     `gorm:"column:message;type:text;not null" json:"message"`
	ShortMessage          string     `gorm:"column:short_message;size:255" json:"short_message"`
	Icon                  string     `gorm:"column:icon;size:50" json:"icon"`
	BgColor               string     `gorm:"column:bg_color;size:50" json:"bg_color"`
	RelatedProjectID      *uint64    `gorm:"column:related_project_id" json:"-"`
	RelatedCampaignID     *uint64    `gorm:"column:related_campaign_id" json:"-"`
	RelatedLoanID         *uint64    `gorm:"column:related_loan_id" json:"-"`
	RelatedContributionID *uint64    `gorm:"column:related_contribution_id" json:"-"`
	IsRead                bool       `gorm:"column:is_read;not null;index" json:"is_read"`
	IsImportant           bool       `gorm:"column:is_important;not null" json:"is_important"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ReadAt                *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

type Option func(*Notification)

func WithSender(id uint64) Option { return func(n *Notification) { n.SenderID = &id } }
func WithProject(id uint64) Option { return func(n *Notification) { n.RelatedProjectID = &id } }
func WithCampaign(id uint64) Option { return func(n *Notification) { n.RelatedCampaignID = &id } }
func WithLoan(id uint64) Option { return func(n *Notification) { n.RelatedLoanID = &id } }
func WithContribution(id uint64) Option { return func(n *Notification) { n.RelatedContributionID = &id } }
func WithIcon(icon, bg string) Option {
	return func(n *Notification) { n.Icon, n.BgColor = icon, bg }
}
func Important() Option { return func(n *Notification) { n.IsImportant = true } }

// New builds an unread notification; the caller assigns NotificationID.
func New(recipientID uint64, typ Type, title, message string, opts ...Option) *Notification {
	n := &Notification{
		RecipientID:  recipientID,
		Type:         typ,
		Title:        title,
		Message:      message,
		ShortMessage: Truncate(message, shortMessageLen),
		BgColor:      defaultBgColor,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// MarkRead sets read_at the first time only and reports whether anything changed.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	t := now.UTC()
	n.ReadAt = &t
	return true
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
