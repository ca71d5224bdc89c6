package entity

import "time"

// Category groups products (pottery, textiles, woodwork, ...).
type Category struct {
	ID        string
	Name      string
	Slug      string
	ImageURL  string
	Active    bool
	CreatedAt time.Time
}
