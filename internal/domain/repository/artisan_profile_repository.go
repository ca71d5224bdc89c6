package repository

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ArtisanProfileRepository persistence port for artisan shops.
// GetByUserID and GetByID return (nil, nil) when no row exists.
// Create returns domain.ErrDuplicate on a user_id uniqueness violation.
type ArtisanProfileRepository interface {
	Create(ctx context.Context, p *entity.ArtisanProfile) error
	GetByID(ctx context.Context, id string) (*entity.ArtisanProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.ArtisanProfile, error)
	Update(ctx context.Context, p *entity.ArtisanProfile) error
	// IncrementSales adds to total_sales/total_orders, used inside the
	// checkout transaction.
	IncrementSales(ctx context.Context, artisanID string, amount decimal.Decimal, orders int) error
}
