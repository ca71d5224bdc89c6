package repository

import (
	"context"
	"time"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string
	ArtisanID  string
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Limit      int
	Offset     int
}

// ProductRepository persistence port for product listings.
// GetForUpdate locks the row (SELECT ... FOR UPDATE) and must be called
// inside a transaction.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
}
