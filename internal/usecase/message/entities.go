package message

import "time"

type SendInput struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	ProjectID string `json:"project_id"`
	Type      string `json:"message_type"`
}

type MessageDTO struct {
	MessageID string    `json:"message_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Preview   string    `json:"preview"`
	ProjectID string    `json:"project_id,omitempty"`
	Type      string    `json:"message_type"`
	IsRead    bool      `json:"is_read"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

type InboxDTO struct {
	Items  []MessageDTO `json:"items"`
	Unread int64        `json:"unread"`
}
