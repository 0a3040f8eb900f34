package mysql

import (
	"context"
	"fmt"

	"igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/message"
	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/withdrawal"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes the project together with the rows that cannot outlive it:
// campaigns, loan campaigns and their contributions, withdrawal requests and payments.
// Messages and notifications survive with their project links cleared.
func (r *ProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		campaigns := func() *gorm.DB { return tx.Model(&campaign.Campaign{}).Select("id").Where("project_id = ?", id) }
		loans := func() *gorm.DB { return tx.Model(&campaign.LoanCampaign{}).Select("id").Where("project_id = ?", id) }
		contributions := func() *gorm.DB {
			return tx.Model(&contribution.Contribution{}).Select("id").
				Where("campaign_id IN (?) OR loan_campaign_id IN (?)", campaigns(), loans())
		}

		unlink := []struct {
			column string
			ids    func() *gorm.DB
		}{
			{"related_contribution_id", contributions},
			{"related_campaign_id", campaigns},
			{"related_loan_id", loans},
		}
		for _, u := range unlink {
			if err := tx.Model(&notification.Notification{}).
				Where(u.column+" IN (?)", u.ids()).
				Update(u.column, nil).Error; err != nil {
				return fmt.Errorf("unlink notifications %s: %w", u.column, err)
			}
		}
		if err := tx.Model(&notification.Notification{}).Where("related_project_id = ?", id).Update("related_project_id", nil).Error; err != nil {
			return fmt.Errorf("unlink notifications: %w", err)
		}
		if err := tx.Model(&message.Message{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return fmt.Errorf("unlink messages: %w", err)
		}

		if err := tx.Where("campaign_id IN (?) OR loan_campaign_id IN (?)", campaigns(), loans()).
			Delete(&contribution.Contribution{}).Error; err != nil {
			return fmt.Errorf("delete contributions: %w", err)
		}
		for _, m := range []any{&campaign.Campaign{}, &campaign.LoanCampaign{}, &withdrawal.Request{}, &payment.Payment{}} {
			if err := tx.Where("project_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("delete %T: %w", m, err)
			}
		}
		return tx.Delete(&project.Project{}, id).Error
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (*project.Project, error) {
	return first[project.Project](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *ProjectRepository) GetByProjectID(ctx context.Context, projectID string) (*project.Project, error) {
	return first[project.Project](r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*project.Project, error) {
	return first[project.Project](forUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

func (r *ProjectRepository) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*project.Project, error) {
	return first[project.Project](forUpdate(r.db.WithContext(ctx)).Where("project_id = ?", projectID))
}

func (r *ProjectRepository) UpdateCollected(ctx context.Context, id uint64, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&project.Project{}).
		Where("id = ?", id).
		Update("collected_amount", amount).Error
}

func (r *ProjectRepository) ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]project.Project, error) {
	var out []project.Project
	err := r.db.WithContext(ctx).
		Where("entrepreneur_id = ?", entrepreneurID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProjectRepository) ListBySubmitter(ctx context.Context, submitterID uint64) ([]project.Project, error) {
	var out []project.Project
	err := r.db.WithContext(ctx).
		Where("submitted_by_id = ?", submitterID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProjectRepository) ListByStatus(ctx context.Context, status project.Status) ([]project.Project, error) {
	var out []project.Project
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
