package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// CartRepository persistence port for cart rows.
// Upsert inserts a row or, on the (user_id, product_id) conflict, adds the
// quantity to the existing row.
type CartRepository interface {
	Upsert(ctx context.Context, item *entity.CartItem) error
	Get(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	ClearByUser(ctx context.Context, userID string) error
}
