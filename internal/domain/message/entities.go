package message

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("message not found")
	ErrNoRecipient  = errors.New("no staff account to receive messages")
	ErrNotRecipient = errors.New("message does not belong to this user")
)

type Type string

const (
	TypeMessage      Type = "message"
	TypeNotification Type = "notification"
	TypeUpdate       Type = "update"
)

const previewLen = 100

type Message struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	MessageID   string    `gorm:"column:message_id;type:char(32);uniqueIndex;not null" json:"message_id"`
	SenderID    uint64    `gorm:"column:sender_id;not null;index" json:"-"`
	RecipientID uint64    `gorm:"column:recipient_id;not null;index" json:"-"`
	Subject     string    `gorm:"column:subject;size:255;not null" json:"subject"`
	Body        string    `gorm:"column:body;type:text;not null" json:"body"`
	ProjectID   *uint64   `gorm:"column:project_id" json:"-"`
	PreviewText string    `gorm:"column:preview_text;size:255" json:"preview_text"`
	Type        Type      `gorm:"column:message_type;size:20;not null" json:"message_type"`
	IsRead      bool      `gorm:"column:is_read;not null" json:"is_read"`
	Archived    bool      `gorm:"column:archived;not null" json:"archived"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

// Preview prefers the stored preview, else the first 100 runes of the body.
func (m *Message) Preview() string {
	if m.PreviewText != "" {
		return m.PreviewText
	}
	r := []rune(m.Body)
	if len(r) > previewLen {
		return string(r[:previewLen]) + "..."
	}
	return m.Body
}

func ReplySubject(subject string) string { return "RE: " + subject }

// Reply builds the answer to m from its recipient, keeping the project link.
func (m *Message) Reply(body string) *Message {
	return &Message{
		SenderID:    m.RecipientID,
		RecipientID: m.SenderID,
		Subject:     ReplySubject(m.Subject),
		Body:        body,
		ProjectID:   m.ProjectID,
		Type:        TypeMessage,
	}
}
