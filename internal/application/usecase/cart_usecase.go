package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CartUseCase manages a user's cart. Re-adding a product increments the
// existing row instead of duplicating it.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase builds the use case.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// Add puts a product in the cart (or bumps its quantity). Validates the
// product exists and is active; stock is only enforced at checkout.
func (uc *CartUseCase) Add(ctx context.Context, userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != entity.ProductStatusActive {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	item := &entity.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.cartRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return uc.List(ctx, userID)
}

// UpdateQuantity sets the quantity of one row; zero removes it.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.cartRepo.Get(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if quantity == 0 {
		if err := uc.cartRepo.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
	} else if err := uc.cartRepo.UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return uc.List(ctx, userID)
}

// Remove deletes one row from the cart.
func (uc *CartUseCase) Remove(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	if err := uc.cartRepo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return uc.List(ctx, userID)
}

// Clear empties the cart.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) error {
	return uc.cartRepo.ClearByUser(ctx, userID)
}

// List returns the cart joined with product display fields and line totals.
func (uc *CartUseCase) List(ctx context.Context, userID string) (*dto.CartResponse, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{Items: []dto.CartLineResponse{}, Subtotal: decimal.Zero}
	for _, item := range items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Product removed since it was carted; skip the orphan row.
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items = append(resp.Items, dto.CartLineResponse{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ImageURL:      product.ImageURL,
			UnitPrice:     product.Price,
			Quantity:      item.Quantity,
			LineTotal:     lineTotal,
			StockQuantity: product.StockQuantity,
		})
		resp.Subtotal = resp.Subtotal.Add(lineTotal)
	}
	return resp, nil
}
