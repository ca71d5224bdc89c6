package entity

import "time"

// CartItem is one product in a user's cart. (UserID, ProductID) is unique:
// re-adding the same product increments Quantity instead of adding a row.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
