package mysql

import (
	"context"

	"igia-backend/internal/domain/withdrawal"

	"gorm.io/gorm"
)

type WithdrawalRepository struct{ db *gorm.DB }

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository { return &WithdrawalRepository{db: db} }

func (r *WithdrawalRepository) Create(ctx context.Context, w *withdrawal.Request) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WithdrawalRepository) Save(ctx context.Context, w *withdrawal.Request) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WithdrawalRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*withdrawal.Request, error) {
	return first[withdrawal.Request](forUpdate(r.db.WithContext(ctx)).Where("request_id = ?", requestID))
}

func (r *WithdrawalRepository) GetPendingByProject(ctx context.Context, projectID uint64) (*withdrawal.Request, error) {
	return first[withdrawal.Request](r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, withdrawal.StatusPending).
		Order("created_at DESC, id DESC"))
}

func (r *WithdrawalRepository) ListByEntrepreneur(ctx context.Context, entrepreneurID uint64) ([]withdrawal.Request, error) {
	var out []withdrawal.Request
	err := r.db.WithContext(ctx).
		Where("entrepreneur_id = ?", entrepreneurID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status withdrawal.Status) ([]withdrawal.Request, error) {
	var out []withdrawal.Request
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
