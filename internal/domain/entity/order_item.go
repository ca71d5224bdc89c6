package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. ArtisanID and ProductName are
// denormalized at write time so the line survives later reassignment or
// renaming of the product. TotalPrice = Quantity * UnitPrice, exactly.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ArtisanID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Status      string // mirrors a subset of the order lifecycle, per artisan
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
