package mysql

import (
	"context"

	"igia-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) Save(ctx context.Context, c *contribution.Contribution) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes the row only; cached campaign totals are left as they are.
func (r *ContributionRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&contribution.Contribution{}, id).Error
}

func (r *ContributionRepository) GetByContributionID(ctx context.Context, contributionID string) (*contribution.Contribution, error) {
	return first[contribution.Contribution](r.db.WithContext(ctx).Where("contribution_id = ?", contributionID))
}

func (r *ContributionRepository) GetByContributionIDForUpdate(ctx context.Context, contributionID string) (*contribution.Contribution, error) {
	return first[contribution.Contribution](forUpdate(r.db.WithContext(ctx)).Where("contribution_id = ?", contributionID))
}

func (r *ContributionRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]contribution.Contribution, error) {
	return r.list(ctx, "investor_id = ?", investorID)
}

func (r *ContributionRepository) ListByCampaign(ctx context.Context, campaignID uint64) ([]contribution.Contribution, error) {
	return r.list(ctx, "campaign_id = ?", campaignID)
}

func (r *ContributionRepository) ListByLoanCampaign(ctx context.Context, loanCampaignID uint64) ([]contribution.Contribution, error) {
	return r.list(ctx, "loan_campaign_id = ?", loanCampaignID)
}

func (r *ContributionRepository) list(ctx context.Context, cond string, arg any) ([]contribution.Contribution, error) {
	var out []contribution.Contribution
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ContributionRepository) SumCompletedByCampaign(ctx context.Context, campaignID uint64) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&contribution.Contribution{}).
		Where("campaign_id = ? AND payment_status = ?", campaignID, contribution.StatusCompleted), "amount")
}

func (r *ContributionRepository) SumCompletedByLoanCampaign(ctx context.Context, loanCampaignID uint64) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&contribution.Contribution{}).
		Where("loan_campaign_id = ? AND payment_status = ?", loanCampaignID, contribution.StatusCompleted), "amount")
}
