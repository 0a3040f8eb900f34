package mysql

import (
	"context"

	"igia-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	return first[payment.Payment](r.db.WithContext(ctx).Where("payment_id = ?", paymentID))
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*payment.Payment, error) {
	return first[payment.Payment](forUpdate(r.db.WithContext(ctx)).Where("payment_id = ?", paymentID))
}

func (r *PaymentRepository) GetLatestByProject(ctx context.Context, projectID uint64, typ payment.Type) (*payment.Payment, error) {
	return first[payment.Payment](r.db.WithContext(ctx).
		Where("project_id = ? AND payment_type = ?", projectID, typ).
		Order("created_at DESC, id DESC"))
}

func (r *PaymentRepository) ListAwaitingValidation(ctx context.Context) ([]payment.Payment, error) {
	var out []payment.Payment
	err := r.db.WithContext(ctx).
		Where("is_successful = ? AND proof_url <> ''", false).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

type SubscriptionRepository struct{ db *gorm.DB }

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, p *payment.IntermediairePayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *SubscriptionRepository) Save(ctx context.Context, p *payment.IntermediairePayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *SubscriptionRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*payment.IntermediairePayment, error) {
	return first[payment.IntermediairePayment](forUpdate(r.db.WithContext(ctx)).Where("payment_id = ?", paymentID))
}

func (r *SubscriptionRepository) ListPending(ctx context.Context) ([]payment.IntermediairePayment, error) {
	var out []payment.IntermediairePayment
	err := r.db.WithContext(ctx).
		Where("status = ?", payment.SubscriptionPending).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
