package dto

import "time"

// ListNotificationsRequest query for GET /api/notifications.
type ListNotificationsRequest struct {
	PageRequest
	UnreadOnly bool `query:"unread_only"`
}

// NotificationResponse one inbox entry.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
