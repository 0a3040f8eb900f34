package uow

import (
	"context"

	"igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/message"
	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/domain/withdrawal"
)

// Repos is the repository set bound to one transaction.
type Repos struct {
	Users         user.Repository
	Profiles      user.ProfileRepository
	Reference     reference.Repository
	Projects      project.Repository
	Campaigns     campaign.Repository
	LoanCampaigns campaign.LoanRepository
	Contributions contribution.Repository
	Notifications notification.Repository
	Messages      message.Repository
	Payments      payment.Repository
	Subscriptions payment.SubscriptionRepository
	Withdrawals   withdrawal.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the project first, then pass it in
	WithinProjectTx(ctx context.Context, projectID string, fn func(r Repos, p *project.Project) error) error
}
