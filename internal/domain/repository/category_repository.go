package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// CategoryRepository persistence port for product categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	ListActive(ctx context.Context) ([]*entity.Category, error)
}
