package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/karigarverse/karigarverse-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// roundingTolerance for the monetary identity check (2-decimal currency).
var roundingTolerance = decimal.NewFromFloat(0.01)

// Retries when a generated order number collides with an existing one.
const maxOrderNumberAttempts = 3

// UseCase turns a priced checkout payload into durable order records while
// keeping stock counts and cart state consistent. All writes of one placement
// happen in a single transaction; notifications are sent after commit.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	artisanRepo repository.ArtisanProfileRepository
	profileRepo repository.ProfileRepository
	notifRepo   repository.NotificationRepository
	receipts    ReceiptGenerator
	log         *logger.Logger
}

// NewUseCase builds the checkout use case. receipts may be nil when PDF
// rendering is not wired.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	artisanRepo repository.ArtisanProfileRepository,
	profileRepo repository.ProfileRepository,
	notifRepo repository.NotificationRepository,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		artisanRepo: artisanRepo,
		profileRepo: profileRepo,
		notifRepo:   notifRepo,
		receipts:    receipts,
		log:         log,
	}
}

// PlaceOrder validates the payload, then atomically: inserts the order header
// (status pending), inserts one line per item with total_price = quantity *
// unit_price, decrements stock per product under a row lock, and clears the
// customer's entire cart. On any failure the whole transaction rolls back.
//
// Note the cart is fully cleared, including rows that are not part of this
// order. That mirrors the storefront behavior callers depend on.
func (uc *UseCase) PlaceOrder(ctx context.Context, customerID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if err := validatePlaceOrder(customerID, in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		Subtotal:        in.Subtotal,
		TaxAmount:       in.TaxAmount,
		ShippingCost:    in.ShippingCost,
		DiscountAmount:  in.DiscountAmount,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var items []*entity.OrderItem
	var artisanIDs []string

	var err error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = NewOrderNumber(now)
		items = items[:0]
		artisanIDs = artisanIDs[:0]
		err = uc.txRunner.Run(ctx, func(
			orderRepo repository.OrderRepository,
			productRepo repository.ProductRepository,
			cartRepo repository.CartRepository,
			artisanRepo repository.ArtisanProfileRepository,
		) error {
			if err := orderRepo.Create(ctx, order); err != nil {
				return err
			}

			// Per-artisan aggregates for the sales counters.
			salesByArtisan := map[string]decimal.Decimal{}

			for _, line := range in.Items {
				// Row lock: two concurrent orders cannot both decrement
				// past zero.
				product, err := productRepo.GetForUpdate(ctx, line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				if product.StockQuantity < line.Quantity {
					return domain.ErrInsufficientStock
				}
				if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-line.Quantity, now); err != nil {
					return err
				}

				item := &entity.OrderItem{
					ID:          uuid.New().String(),
					OrderID:     order.ID,
					ProductID:   product.ID,
					ArtisanID:   product.ArtisanID,
					ProductName: product.Name,
					Quantity:    line.Quantity,
					UnitPrice:   line.UnitPrice,
					TotalPrice:  line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
					Status:      entity.OrderStatusPending,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := orderRepo.CreateItem(ctx, item); err != nil {
					return err
				}
				items = append(items, item)

				if _, seen := salesByArtisan[product.ArtisanID]; !seen {
					artisanIDs = append(artisanIDs, product.ArtisanID)
					salesByArtisan[product.ArtisanID] = decimal.Zero
				}
				salesByArtisan[product.ArtisanID] = salesByArtisan[product.ArtisanID].Add(item.TotalPrice)
			}

			for _, artisanID := range artisanIDs {
				if err := artisanRepo.IncrementSales(ctx, artisanID, salesByArtisan[artisanID], 1); err != nil {
					return err
				}
			}

			// Full cart clear, not just the purchased rows.
			return cartRepo.ClearByUser(ctx, customerID)
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue // order number collision, regenerate
		}
		break
	}
	if err != nil {
		return nil, wrapTxError(err)
	}

	uc.notifyOrderPlaced(ctx, order, artisanIDs)

	resp := toOrderResponse(order)
	for _, item := range items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	return resp, nil
}

// validatePlaceOrder enforces the preconditions before any write: items
// non-empty, quantities positive, prices and totals non-negative, and
// total_amount = subtotal + tax + shipping - discount within 0.01.
func validatePlaceOrder(customerID string, in dto.PlaceOrderRequest) error {
	if customerID == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	for _, amount := range []decimal.Decimal{in.Subtotal, in.TaxAmount, in.ShippingCost, in.DiscountAmount, in.TotalAmount} {
		if amount.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	expected := in.Subtotal.Add(in.TaxAmount).Add(in.ShippingCost).Sub(in.DiscountAmount)
	if expected.Sub(in.TotalAmount).Abs().GreaterThan(roundingTolerance) {
		return domain.ErrInvalidInput
	}
	if in.ShippingAddress.Line1 == "" || in.ShippingAddress.City == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// wrapTxError keeps the domain taxonomy intact and hides raw driver errors
// behind ErrTransaction so callers can branch on kind.
func wrapTxError(err error) error {
	for _, sentinel := range []error{
		domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrInsufficientStock,
		domain.ErrConflict, domain.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrTransaction, err)
}

// notifyOrderPlaced writes inbox entries for the buyer and each artisan with
// a line in the order. Runs after commit; failures are logged, never returned.
func (uc *UseCase) notifyOrderPlaced(ctx context.Context, order *entity.Order, artisanIDs []string) {
	if uc.notifRepo == nil {
		return
	}
	now := time.Now().UTC()
	buyer := &entity.Notification{
		ID:          uuid.New().String(),
		UserID:      order.CustomerID,
		Type:        entity.NotificationOrderPlaced,
		Title:       "Order placed",
		Message:     fmt.Sprintf("Your order %s has been placed.", order.OrderNumber),
		ReferenceID: order.ID,
		CreatedAt:   now,
	}
	if err := uc.notifRepo.Create(ctx, buyer); err != nil && uc.log != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("buyer notification failed")
	}
	for _, artisanID := range artisanIDs {
		// Notifications address users; resolve the shop to its owner.
		profile, err := uc.artisanRepo.GetByID(ctx, artisanID)
		if err != nil || profile == nil {
			if uc.log != nil {
				uc.log.Warn().Err(err).Str("artisan_id", artisanID).Msg("artisan lookup for notification failed")
			}
			continue
		}
		n := &entity.Notification{
			ID:          uuid.New().String(),
			UserID:      profile.UserID,
			Type:        entity.NotificationOrderReceived,
			Title:       "New order received",
			Message:     fmt.Sprintf("You have new items to fulfil in order %s.", order.OrderNumber),
			ReferenceID: order.ID,
			CreatedAt:   now,
		}
		if err := uc.notifRepo.Create(ctx, n); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Str("order_id", order.ID).Str("artisan_id", artisanID).Msg("artisan notification failed")
		}
	}
}
