package mysql

import (
	"context"

	"igia-backend/internal/domain/message"

	"gorm.io/gorm"
)

type MessageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) *MessageRepository { return &MessageRepository{db: db} }

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) Save(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MessageRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&message.Message{}, id).Error
}

func (r *MessageRepository) GetByMessageID(ctx context.Context, messageID string) (*message.Message, error) {
	return first[message.Message](r.db.WithContext(ctx).Where("message_id = ?", messageID))
}

func (r *MessageRepository) ListInbox(ctx context.Context, recipientID uint64) ([]message.Message, error) {
	var out []message.Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND archived = ?", recipientID, false).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *MessageRepository) ListSent(ctx context.Context, senderID uint64) ([]message.Message, error) {
	var out []message.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *MessageRepository) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("recipient_id = ? AND is_read = ? AND archived = ?", recipientID, false, false).
		Count(&n).Error
	return n, err
}
