package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest payload for POST /api/products.
type CreateProductRequest struct {
	CategoryID    string          `json:"category_id" validate:"required,uuid4"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest partial patch for PUT /api/products/:id.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListProductsRequest query filters for GET /api/products.
type ListProductsRequest struct {
	PageRequest
	CategoryID string `query:"category_id"`
	ArtisanID  string `query:"artisan_id"`
	Search     string `query:"search"`
	MinPrice   string `query:"min_price"`
	MaxPrice   string `query:"max_price"`
}

// ProductResponse public view of a product listing.
type ProductResponse struct {
	ID            string          `json:"id"`
	ArtisanID     string          `json:"artisan_id"`
	CategoryID    string          `json:"category_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
