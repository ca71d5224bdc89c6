package usecase

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// NotificationUseCase the user's notification inbox.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase builds the use case.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List returns the caller's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, in dto.ListNotificationsRequest) ([]*dto.NotificationResponse, error) {
	in.DefaultPage()
	notifications, err := uc.notifRepo.ListByUser(ctx, userID, in.UnreadOnly, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marks one of the caller's notifications as read.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.notifRepo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks the whole inbox as read.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notifRepo.MarkAllRead(ctx, userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		ReferenceID: n.ReferenceID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
