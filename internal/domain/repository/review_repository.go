package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// ReviewRepository persistence port for product reviews.
// Create returns domain.ErrDuplicate when the user already reviewed the product.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Review, error)
}
