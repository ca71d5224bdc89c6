package dto

import (
	"time"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderItemInput one checkout line as priced by the caller.
type OrderItemInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PlaceOrderRequest validated checkout payload for POST /api/orders.
// TotalAmount must equal Subtotal + TaxAmount + ShippingCost - DiscountAmount
// within currency rounding (0.01).
type PlaceOrderRequest struct {
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	ShippingCost    decimal.Decimal  `json:"shipping_cost"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	ShippingAddress entity.Address   `json:"shipping_address" validate:"required"`
	BillingAddress  *entity.Address  `json:"billing_address"`
	PaymentMethod   string           `json:"payment_method" validate:"omitempty,oneof=cod upi card netbanking"`
	Notes           string           `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateOrderItemStatusRequest payload for the artisan fulfillment endpoint.
type UpdateOrderItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
}

// OrderItemResponse one fulfilled or pending order line.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ArtisanID       string          `json:"artisan_id"`
	ProductName     string          `json:"product_name"`
	ProductImageURL string          `json:"product_image_url,omitempty"`
	ShopName        string          `json:"shop_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
}

// OrderResponse the order header, with items on detail reads.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      string              `json:"customer_id"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress entity.Address      `json:"shipping_address"`
	BillingAddress  *entity.Address     `json:"billing_address,omitempty"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
