package mysql

import (
	"context"
	"time"

	"igia-backend/internal/domain/campaign"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignRepository struct{ db *gorm.DB }

func NewCampaignRepository(db *gorm.DB) *CampaignRepository { return &CampaignRepository{db: db} }

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CampaignRepository) GetByID(ctx context.Context, id uint64) (*campaign.Campaign, error) {
	return first[campaign.Campaign](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *CampaignRepository) GetByCampaignID(ctx context.Context, campaignID string) (*campaign.Campaign, error) {
	return first[campaign.Campaign](r.db.WithContext(ctx).Where("campaign_id = ?", campaignID))
}

func (r *CampaignRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*campaign.Campaign, error) {
	return first[campaign.Campaign](forUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

func (r *CampaignRepository) GetByCampaignIDForUpdate(ctx context.Context, campaignID string) (*campaign.Campaign, error) {
	return first[campaign.Campaign](forUpdate(r.db.WithContext(ctx)).Where("campaign_id = ?", campaignID))
}

func (r *CampaignRepository) ListByProject(ctx context.Context, projectID uint64) ([]campaign.Campaign, error) {
	var out []campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *CampaignRepository) ListActive(ctx context.Context, now time.Time) ([]campaign.Campaign, error) {
	var out []campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("status = ? AND (end_date IS NULL OR end_date > ?)", campaign.StatusActive, now.UTC()).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *CampaignRepository) SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&campaign.Campaign{}).Where("project_id = ?", projectID), "collected_amount")
}

type LoanCampaignRepository struct{ db *gorm.DB }

func NewLoanCampaignRepository(db *gorm.DB) *LoanCampaignRepository {
	return &LoanCampaignRepository{db: db}
}

func (r *LoanCampaignRepository) Create(ctx context.Context, l *campaign.LoanCampaign) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanCampaignRepository) Save(ctx context.Context, l *campaign.LoanCampaign) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanCampaignRepository) GetByID(ctx context.Context, id uint64) (*campaign.LoanCampaign, error) {
	return first[campaign.LoanCampaign](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *LoanCampaignRepository) GetByLoanCampaignID(ctx context.Context, loanCampaignID string) (*campaign.LoanCampaign, error) {
	return first[campaign.LoanCampaign](r.db.WithContext(ctx).Where("loan_campaign_id = ?", loanCampaignID))
}

func (r *LoanCampaignRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*campaign.LoanCampaign, error) {
	return first[campaign.LoanCampaign](forUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

func (r *LoanCampaignRepository) GetByLoanCampaignIDForUpdate(ctx context.Context, loanCampaignID string) (*campaign.LoanCampaign, error) {
	return first[campaign.LoanCampaign](forUpdate(r.db.WithContext(ctx)).Where("loan_campaign_id = ?", loanCampaignID))
}

func (r *LoanCampaignRepository) ListByProject(ctx context.Context, projectID uint64) ([]campaign.LoanCampaign, error) {
	var out []campaign.LoanCampaign
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanCampaignRepository) ListActive(ctx context.Context, now time.Time) ([]campaign.LoanCampaign, error) {
	var out []campaign.LoanCampaign
	err := r.db.WithContext(ctx).
		Where("status = ? AND (end_date IS NULL OR end_date > ?)", campaign.StatusActive, now.UTC()).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanCampaignRepository) SumCollectedByProject(ctx context.Context, projectID uint64) (decimal.Decimal, error) {
	return sum(r.db.WithContext(ctx).Model(&campaign.LoanCampaign{}).Where("project_id = ?", projectID), "collected_amount")
}
