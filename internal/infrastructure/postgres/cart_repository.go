package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo CartRepository adapter over PostgreSQL (usable with pool or tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository builds the adapter. Pass a pool or a tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Upsert inserts a cart row or, on the (user_id, product_id) conflict, adds
// the quantity to the existing row.
func (r *CartRepo) Upsert(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// Get fetches one cart row. Returns (nil, nil) when absent.
func (r *CartRepo) Get(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = $1 AND product_id = $2`
	var item entity.CartItem
	err := r.q.QueryRow(ctx, query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &item, nil
}

// ListByUser returns the user's cart rows, oldest first.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateQuantity sets the quantity of one row.
func (r *CartRepo) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE user_id = $1 AND product_id = $2`,
		userID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart quantity: %w", err)
	}
	return nil
}

// Remove deletes one row.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// ClearByUser deletes every row of the user's cart.
func (r *CartRepo) ClearByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
