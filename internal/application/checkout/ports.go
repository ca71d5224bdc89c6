package checkout

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// TxRunner runs a function inside a database transaction, passing repositories
// bound to that tx. Guarantees atomicity for order placement: on error nothing
// is persisted.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
		artisanRepo repository.ArtisanProfileRepository,
	) error) error
}

// ReceiptGenerator renders an order receipt document.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, items []*repository.OrderItemDetail, customerName string) ([]byte, error)
}
