package notification

import "time"

type NotificationDTO struct {
	NotificationID string     `json:"notification_id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	ShortMessage   string     `json:"short_message"`
	Icon           string     `json:"icon"`
	BgColor        string     `json:"bg_color"`
	IsRead         bool       `json:"is_read"`
	IsImportant    bool       `json:"is_important"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

type ListDTO struct {
	Items  []NotificationDTO `json:"items"`
	Unread int64             `json:"unread"`
}
