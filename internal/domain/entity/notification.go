package entity

import "time"

// Notification types.
const (
	NotificationOrderPlaced   = "order_placed"
	NotificationOrderReceived = "order_received" // artisan-side
	NotificationOrderStatus   = "order_status"
)

// Notification is an inbox entry for a user. ReferenceID points at the
// related record (usually an order).
type Notification struct {
	ID          string
	UserID      string
	Type        string
	Title       string
	Message     string
	ReferenceID string
	Read        bool
	CreatedAt   time.Time
}
