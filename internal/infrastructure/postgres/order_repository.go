package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_id, status, payment_status, subtotal, tax_amount,
		shipping_cost, discount_amount, total_amount, shipping_address, billing_address,
		payment_method, notes, created_at, updated_at`

// OrderRepo OrderRepository adapter over PostgreSQL (usable with pool or tx).
// Addresses are stored as JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter. Pass a pool or a tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists the order header. A colliding order_number maps to
// ErrDuplicate so the caller can regenerate and retry.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}
	var billing []byte
	if o.BillingAddress != nil {
		billing, err = json.Marshal(o.BillingAddress)
		if err != nil {
			return fmt.Errorf("marshal billing address: %w", err)
		}
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.CustomerID, o.Status, o.PaymentStatus, o.Subtotal, o.TaxAmount,
		o.ShippingCost, o.DiscountAmount, o.TotalAmount, shipping, billing,
		o.PaymentMethod, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persists one order line.
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, artisan_id, product_name, quantity, unit_price, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.ArtisanID, item.ProductName,
		item.Quantity, item.UnitPrice, item.TotalPrice, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID fetches the order header. Returns (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, ``, id)
}

// GetForUpdate fetches the header and locks its row for the cancellation path.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, ` FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, suffix string, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1` + suffix
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByCustomer returns the customer's order headers, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

const orderItemColumns = `id, order_id, product_id, artisan_id, product_name, quantity, unit_price, total_price, status, created_at, updated_at`

// GetItems returns the raw lines of an order.
func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ArtisanID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// GetItemDetails returns the lines joined with product image and shop name
// for detail reads and receipts.
func (r *OrderRepo) GetItemDetails(ctx context.Context, orderID string) ([]*repository.OrderItemDetail, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.artisan_id, oi.product_name, oi.quantity,
		       oi.unit_price, oi.total_price, oi.status, oi.created_at, oi.updated_at,
		       COALESCE(p.image_url, ''), COALESCE(a.shop_name, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		LEFT JOIN artisan_profiles a ON a.id = oi.artisan_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order item details: %w", err)
	}
	defer rows.Close()
	var list []*repository.OrderItemDetail
	for rows.Next() {
		var d repository.OrderItemDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.ArtisanID, &d.ProductName, &d.Quantity,
			&d.UnitPrice, &d.TotalPrice, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductImageURL, &d.ShopName); err != nil {
			return nil, fmt.Errorf("scan order item detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetItemByID fetches one line. Returns (nil, nil) when absent.
func (r *OrderRepo) GetItemByID(ctx context.Context, itemID string) (*entity.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`
	var item entity.OrderItem
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.ArtisanID, &item.ProductName,
		&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &item, nil
}

// UpdateStatus sets the header status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		orderID, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateItemStatus sets one line's status.
func (r *OrderRepo) UpdateItemStatus(ctx context.Context, itemID, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE order_items SET status = $2, updated_at = $3 WHERE id = $1`,
		itemID, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order item status: %w", err)
	}
	return nil
}

// scanOrder reads one header row, decoding the JSONB addresses.
func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var shipping []byte
	var billing []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.PaymentStatus, &o.Subtotal, &o.TaxAmount,
		&o.ShippingCost, &o.DiscountAmount, &o.TotalAmount, &shipping, &billing,
		&o.PaymentMethod, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
	}
	if len(billing) > 0 {
		var addr entity.Address
		if err := json.Unmarshal(billing, &addr); err != nil {
			return nil, fmt.Errorf("unmarshal billing address: %w", err)
		}
		o.BillingAddress = &addr
	}
	return &o, nil
}
