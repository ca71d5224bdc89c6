package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ArtisanProfileRepository = (*ArtisanProfileRepo)(nil)

const artisanProfileColumns = `id, user_id, shop_name, description, location, specialties,
		years_of_experience, website_url, instagram_handle, shipping_policy, return_policy,
		verification_status, status, commission_rate, total_sales, total_orders, created_at, updated_at`

// ArtisanProfileRepo ArtisanProfileRepository adapter over PostgreSQL
// (usable with pool or tx).
type ArtisanProfileRepo struct {
	q Querier
}

// NewArtisanProfileRepository builds the adapter. Pass a pool or a tx (Querier).
func NewArtisanProfileRepository(q Querier) *ArtisanProfileRepo {
	return &ArtisanProfileRepo{q: q}
}

// Create persists a new shop. The unique index on user_id is the backstop
// against concurrent first submissions; a violation maps to ErrDuplicate.
func (r *ArtisanProfileRepo) Create(ctx context.Context, p *entity.ArtisanProfile) error {
	query := `
		INSERT INTO artisan_profiles (` + artisanProfileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.ShopName, p.Description, p.Location, p.Specialties,
		p.YearsOfExperience, p.WebsiteURL, p.InstagramHandle, p.ShippingPolicy, p.ReturnPolicy,
		p.VerificationStatus, p.Status, p.CommissionRate, p.TotalSales, p.TotalOrders,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert artisan profile: %w", err)
	}
	return nil
}

// GetByID fetches a shop by its id. Returns (nil, nil) when absent.
func (r *ArtisanProfileRepo) GetByID(ctx context.Context, id string) (*entity.ArtisanProfile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// GetByUserID fetches a shop by its owner. Returns (nil, nil) when absent.
func (r *ArtisanProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.ArtisanProfile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *ArtisanProfileRepo) get(ctx context.Context, where string, arg any) (*entity.ArtisanProfile, error) {
	query := `SELECT ` + artisanProfileColumns + ` FROM artisan_profiles ` + where
	var p entity.ArtisanProfile
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.ShopName, &p.Description, &p.Location, &p.Specialties,
		&p.YearsOfExperience, &p.WebsiteURL, &p.InstagramHandle, &p.ShippingPolicy, &p.ReturnPolicy,
		&p.VerificationStatus, &p.Status, &p.CommissionRate, &p.TotalSales, &p.TotalOrders,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get artisan profile: %w", err)
	}
	return &p, nil
}

// Update overwrites the mutable shop fields.
func (r *ArtisanProfileRepo) Update(ctx context.Context, p *entity.ArtisanProfile) error {
	query := `
		UPDATE artisan_profiles
		SET shop_name = $2, description = $3, location = $4, specialties = $5,
		    years_of_experience = $6, website_url = $7, instagram_handle = $8,
		    shipping_policy = $9, return_policy = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ShopName, p.Description, p.Location, p.Specialties,
		p.YearsOfExperience, p.WebsiteURL, p.InstagramHandle,
		p.ShippingPolicy, p.ReturnPolicy, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update artisan profile: %w", err)
	}
	return nil
}

// IncrementSales adds to the shop's sales counters (checkout transaction).
func (r *ArtisanProfileRepo) IncrementSales(ctx context.Context, artisanID string, amount decimal.Decimal, orders int) error {
	query := `
		UPDATE artisan_profiles
		SET total_sales = total_sales + $2, total_orders = total_orders + $3, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, artisanID, amount, orders)
	if err != nil {
		return fmt.Errorf("increment artisan sales: %w", err)
	}
	return nil
}
