package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uint64) error
	GetByNotificationID(ctx context.Context, notificationID string) (*Notification, error)
	// ListByRecipient returns newest first; limit <= 0 means no limit.
	ListByRecipient(ctx context.Context, recipientID uint64, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uint64, at time.Time) (int64, error)
}
