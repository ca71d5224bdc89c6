package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// NotificationRepository persistence port for the notification inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}
