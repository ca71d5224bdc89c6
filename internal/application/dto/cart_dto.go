package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest payload for POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest payload for PUT /api/cart/items/:productID.
// Quantity 0 removes the row.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// CartLineResponse a cart row joined with product display fields.
type CartLineResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ImageURL      string          `json:"image_url,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	StockQuantity int             `json:"stock_quantity"`
}

// CartResponse the full cart with its running subtotal.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
