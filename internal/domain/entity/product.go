package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product listing states.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a craft listing. It belongs to exactly one artisan and one
// category. StockQuantity must never go below zero after an order.
type Product struct {
	ID            string
	ArtisanID     string
	CategoryID    string
	SKU           string // unique, generated at creation
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
