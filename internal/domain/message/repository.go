package message

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	Save(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id uint64) error
	GetByMessageID(ctx context.Context, messageID string) (*Message, error)
	// ListInbox excludes archived messages, newest first.
	ListInbox(ctx context.Context, recipientID uint64) ([]Message, error)
	ListSent(ctx context.Context, senderID uint64) ([]Message, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
}
