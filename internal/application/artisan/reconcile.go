package artisan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReconcileUseCase presents a single "update shop profile" operation whether
// or not a profile row exists yet. The userID always comes from the
// authenticated caller, never from the payload.
type ReconcileUseCase struct {
	repo repository.ArtisanProfileRepository
}

// NewReconcileUseCase builds the use case.
func NewReconcileUseCase(repo repository.ArtisanProfileRepository) *ReconcileUseCase {
	return &ReconcileUseCase{repo: repo}
}

// Reconcile inserts a full shop record on first submission (defaults for
// absent fields) or applies a partial patch to the existing one. Calling it
// twice with the same payload yields the same final state.
//
// The exists-then-insert sequence is not atomic; if a concurrent first
// submission wins the insert, the unique index on user_id trips and we fall
// back to an update instead of surfacing the constraint error.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, userID string, in dto.UpdateArtisanProfileRequest) (*dto.ArtisanProfileResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		created, err := uc.create(ctx, userID, in)
		if err == nil {
			return toResponse(created), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Lost the race against a concurrent insert: retry as an update.
		existing, err = uc.repo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrConflict
		}
	}

	applyUpdates(existing, in)
	existing.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toResponse(existing), nil
}

// GetByUserID returns the caller's own shop profile.
func (uc *ReconcileUseCase) GetByUserID(ctx context.Context, userID string) (*dto.ArtisanProfileResponse, error) {
	p, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// GetByID returns the public view of a shop.
func (uc *ReconcileUseCase) GetByID(ctx context.Context, id string) (*dto.ArtisanProfileResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// create synthesizes a full record: shop_name from the payload (required on
// first submission), every other field from the payload or its default.
func (uc *ReconcileUseCase) create(ctx context.Context, userID string, in dto.UpdateArtisanProfileRequest) (*entity.ArtisanProfile, error) {
	if in.ShopName == nil || *in.ShopName == "" {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	p := &entity.ArtisanProfile{
		ID:                 uuid.New().String(),
		UserID:             userID,
		ShopName:           *in.ShopName,
		Description:        in.Description,
		Location:           in.Location,
		Specialties:        []string{},
		YearsOfExperience:  in.YearsOfExperience,
		WebsiteURL:         in.WebsiteURL,
		InstagramHandle:    in.InstagramHandle,
		ShippingPolicy:     in.ShippingPolicy,
		ReturnPolicy:       in.ReturnPolicy,
		VerificationStatus: entity.VerificationPending,
		Status:             entity.ArtisanStatusActive,
		CommissionRate:     entity.DefaultCommissionRate,
		TotalSales:         decimal.Zero,
		TotalOrders:        0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.Specialties != nil {
		p.Specialties = *in.Specialties
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// applyUpdates patches only the fields present in the request.
func applyUpdates(p *entity.ArtisanProfile, in dto.UpdateArtisanProfileRequest) {
	if in.ShopName != nil && *in.ShopName != "" {
		p.ShopName = *in.ShopName
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Location != nil {
		p.Location = in.Location
	}
	if in.Specialties != nil {
		p.Specialties = *in.Specialties
	}
	if in.YearsOfExperience != nil {
		p.YearsOfExperience = in.YearsOfExperience
	}
	if in.WebsiteURL != nil {
		p.WebsiteURL = in.WebsiteURL
	}
	if in.InstagramHandle != nil {
		p.InstagramHandle = in.InstagramHandle
	}
	if in.ShippingPolicy != nil {
		p.ShippingPolicy = in.ShippingPolicy
	}
	if in.ReturnPolicy != nil {
		p.ReturnPolicy = in.ReturnPolicy
	}
}

func toResponse(p *entity.ArtisanProfile) *dto.ArtisanProfileResponse {
	if p == nil {
		return nil
	}
	specialties := p.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return &dto.ArtisanProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		ShopName:           p.ShopName,
		Description:        p.Description,
		Location:           p.Location,
		Specialties:        specialties,
		YearsOfExperience:  p.YearsOfExperience,
		WebsiteURL:         p.WebsiteURL,
		InstagramHandle:    p.InstagramHandle,
		ShippingPolicy:     p.ShippingPolicy,
		ReturnPolicy:       p.ReturnPolicy,
		VerificationStatus: p.VerificationStatus,
		Status:             p.Status,
		CommissionRate:     p.CommissionRate,
		TotalSales:         p.TotalSales,
		TotalOrders:        p.TotalOrders,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
