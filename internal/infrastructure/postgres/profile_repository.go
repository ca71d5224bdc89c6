package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo ProfileRepository adapter over PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository builds the persistence adapter for user profiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persists a new profile.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, phone, avatar_url, address, city, state, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.UserID, p.FullName, p.Phone, p.AvatarURL, p.Address, p.City, p.State, p.PostalCode,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByUserID fetches the profile of a user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `
		SELECT user_id, full_name, phone, avatar_url, address, city, state, postal_code, created_at, updated_at
		FROM profiles WHERE user_id = $1`
	var p entity.Profile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.Address, &p.City, &p.State, &p.PostalCode,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Update overwrites the mutable profile fields.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, phone = $3, avatar_url = $4, address = $5, city = $6, state = $7, postal_code = $8, updated_at = $9
		WHERE user_id = $1`
	_, err := r.q.Exec(ctx, query,
		p.UserID, p.FullName, p.Phone, p.AvatarURL, p.Address, p.City, p.State, p.PostalCode, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
