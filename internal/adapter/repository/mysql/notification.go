package mysql

import (
	"context"
	"time"

	"igia-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&notification.Notification{}, id).Error
}

func (r *NotificationRepository) GetByNotificationID(ctx context.Context, notificationID string) (*notification.Notification, error) {
	return first[notification.Notification](r.db.WithContext(ctx).Where("notification_id = ?", notificationID))
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint64, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	q := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": at.UTC()})
	return res.RowsAffected, res.Error
}
