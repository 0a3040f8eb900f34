package notificationmock

import (
	"context"
	"time"

	domain "igia-backend/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, n *domain.Notification) error
	SaveFn                func(ctx context.Context, n *domain.Notification) error
	DeleteFn              func(ctx context.Context, id uint64) error
	GetByNotificationIDFn func(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByRecipientFn     func(ctx context.Context, recipientID uint64, limit int) ([]domain.Notification, error)
	CountUnreadFn         func(ctx context.Context, recipientID uint64) (int64, error)
	MarkAllReadFn         func(ctx context.Context, recipientID uint64, at time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, n *domain.Notification) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, n)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByNotificationID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	if m.GetByNotificationIDFn != nil {
		return m.GetByNotificationIDFn(ctx, notificationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRecipient(ctx context.Context, recipientID uint64, limit int) ([]domain.Notification, error) {
	if m.ListByRecipientFn != nil {
		return m.ListByRecipientFn(ctx, recipientID, limit)
	}
	return nil, nil
}

func (m *Repo) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, recipientID)
	}
	return 0, nil
}

func (m *Repo) MarkAllRead(ctx context.Context, recipientID uint64, at time.Time) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, recipientID, at)
	}
	return 0, nil
}
