package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// ProfileRepository persistence port for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
