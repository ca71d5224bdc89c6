package entity

import "time"

// Review is a buyer's rating of a product. (ProductID, UserID) is unique.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
