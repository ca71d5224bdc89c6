package repository

import (
	"context"
	"time"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
)

// OrderItemDetail is an order line joined with product and shop display
// fields for read paths.
type OrderItemDetail struct {
	entity.OrderItem
	ProductImageURL string
	ShopName        string
}

// OrderRepository persistence port for orders and their lines.
// Create returns domain.ErrDuplicate when the order_number collides.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Order, error)
	GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	GetItemDetails(ctx context.Context, orderID string) ([]*OrderItemDetail, error)
	GetItemByID(ctx context.Context, itemID string) (*entity.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID, status string, updatedAt time.Time) error
	UpdateItemStatus(ctx context.Context, itemID, status string, updatedAt time.Time) error
}
