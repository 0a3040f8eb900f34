package mysql

import (
	"context"

	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// NewRepos binds every repository to db, which may be a transaction handle.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:         &UserRepository{db: db},
		Profiles:      &ProfileRepository{db: db},
		Reference:     &ReferenceRepository{db: db},
		Projects:      &ProjectRepository{db: db},
		Campaigns:     &CampaignRepository{db: db},
		LoanCampaigns: &LoanCampaignRepository{db: db},
		Contributions: &ContributionRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		Messages:      &MessageRepository{db: db},
		Payments:      &PaymentRepository{db: db},
		Subscriptions: &SubscriptionRepository{db: db},
		Withdrawals:   &WithdrawalRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

func (u *GormUoW) WithinProjectTx(ctx context.Context, projectID string, fn func(r uow.Repos, p *project.Project) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		// lock the project row up-front to prevent races
		p, err := r.Projects.GetByProjectIDForUpdate(ctx, projectID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
