package checkout

import (
	"context"
	"time"

	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// GetOrder returns the header plus items joined with product and shop display
// fields. Only the owning customer may read it.
func (uc *UseCase) GetOrder(ctx context.Context, customerID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.orderRepo.GetItemDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	for _, d := range details {
		item := toOrderItemResponse(&d.OrderItem)
		item.ProductImageURL = d.ProductImageURL
		item.ShopName = d.ShopName
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

// ListOrders returns the customer's order headers, newest first.
func (uc *UseCase) ListOrders(ctx context.Context, customerID string, limit, offset int) ([]*dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// CancelOrder cancels a pending or processing order, restoring stock for
// every non-cancelled line in the same transaction.
func (uc *UseCase) CancelOrder(ctx context.Context, customerID, orderID string) (*dto.OrderResponse, error) {
	now := time.Now().UTC()
	var cancelled *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		_ repository.CartRepository,
		_ repository.ArtisanProfileRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CustomerID != customerID {
			return domain.ErrForbidden
		}
		if !entity.CanTransitionOrderStatus(order.Status, entity.OrderStatusCancelled) {
			return domain.ErrConflict
		}

		items, err := orderRepo.GetItems(ctx, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.Status == entity.OrderStatusCancelled {
				continue
			}
			product, err := productRepo.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity+item.Quantity, now); err != nil {
					return err
				}
			}
			if err := orderRepo.UpdateItemStatus(ctx, item.ID, entity.OrderStatusCancelled, now); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled, now); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelled
		order.UpdatedAt = now
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}
	return toOrderResponse(cancelled), nil
}

// UpdateItemStatus moves one order line through the fulfillment lifecycle on
// behalf of the artisan that owns it. The header status is re-derived from
// the lines afterwards; a line cancelled here returns its stock.
func (uc *UseCase) UpdateItemStatus(ctx context.Context, artisanUserID, orderID, itemID, status string) (*dto.OrderResponse, error) {
	shop, err := uc.artisanRepo.GetByUserID(ctx, artisanUserID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		_ repository.CartRepository,
		_ repository.ArtisanProfileRepository,
	) error {
		item, err := orderRepo.GetItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return domain.ErrNotFound
		}
		if item.ArtisanID != shop.ID {
			return domain.ErrForbidden
		}
		if !entity.CanTransitionOrderStatus(item.Status, status) {
			return domain.ErrConflict
		}
		if err := orderRepo.UpdateItemStatus(ctx, itemID, status, now); err != nil {
			return err
		}
		if status == entity.OrderStatusCancelled {
			product, err := productRepo.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity+item.Quantity, now); err != nil {
					return err
				}
			}
		}

		items, err := orderRepo.GetItems(ctx, orderID)
		if err != nil {
			return err
		}
		derived := deriveOrderStatus(items)
		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order != nil && order.Status != derived {
			return orderRepo.UpdateStatus(ctx, orderID, derived, now)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// Receipt renders the order receipt PDF for the owning customer.
func (uc *UseCase) Receipt(ctx context.Context, customerID, orderID string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.orderRepo.GetItemDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	customerName := order.ShippingAddress.FullName
	if profile, err := uc.profileRepo.GetByUserID(ctx, customerID); err == nil && profile != nil && profile.FullName != "" {
		customerName = profile.FullName
	}
	return uc.receipts.GenerateOrderReceipt(ctx, order, details, customerName)
}

// deriveOrderStatus folds per-item statuses into a header status. An order
// can be partially shipped across artisans; the header reflects the furthest
// common ground of its live lines.
func deriveOrderStatus(items []*entity.OrderItem) string {
	if len(items) == 0 {
		return entity.OrderStatusPending
	}
	live := items[:0:0]
	for _, item := range items {
		if item.Status != entity.OrderStatusCancelled {
			live = append(live, item)
		}
	}
	if len(live) == 0 {
		return entity.OrderStatusCancelled
	}

	allDelivered, allShippedOrBeyond, anyStarted := true, true, false
	for _, item := range live {
		switch item.Status {
		case entity.OrderStatusDelivered:
			anyStarted = true
		case entity.OrderStatusShipped:
			allDelivered = false
			anyStarted = true
		case entity.OrderStatusProcessing:
			allDelivered = false
			allShippedOrBeyond = false
			anyStarted = true
		default:
			allDelivered = false
			allShippedOrBeyond = false
		}
	}
	switch {
	case allDelivered:
		return entity.OrderStatusDelivered
	case allShippedOrBeyond:
		return entity.OrderStatusShipped
	case anyStarted:
		return entity.OrderStatusProcessing
	default:
		return entity.OrderStatusPending
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		ShippingCost:    o.ShippingCost,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderItemResponse(item *entity.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ArtisanID:   item.ArtisanID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		Status:      item.Status,
	}
}
