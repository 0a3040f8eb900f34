package messagemock

import (
	"context"

	domain "igia-backend/internal/domain/message"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, m *domain.Message) error
	SaveFn           func(ctx context.Context, m *domain.Message) error
	DeleteFn         func(ctx context.Context, id uint64) error
	GetByMessageIDFn func(ctx context.Context, messageID string) (*domain.Message, error)
	ListInboxFn      func(ctx context.Context, recipientID uint64) ([]domain.Message, error)
	ListSentFn       func(ctx context.Context, senderID uint64) ([]domain.Message, error)
	CountUnreadFn    func(ctx context.Context, recipientID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, msg *domain.Message) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, msg)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, msg *domain.Message) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, msg)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByMessageID(ctx context.Context, messageID string) (*domain.Message, error) {
	if m.GetByMessageIDFn != nil {
		return m.GetByMessageIDFn(ctx, messageID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListInbox(ctx context.Context, recipientID uint64) ([]domain.Message, error) {
	if m.ListInboxFn != nil {
		return m.ListInboxFn(ctx, recipientID)
	}
	return nil, nil
}

func (m *Repo) ListSent(ctx context.Context, senderID uint64) ([]domain.Message, error) {
	if m.ListSentFn != nil {
		return m.ListSentFn(ctx, senderID)
	}
	return nil, nil
}

func (m *Repo) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, recipientID)
	}
	return 0, nil
}
