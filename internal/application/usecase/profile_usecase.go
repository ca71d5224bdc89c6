package usecase

import (
	"context"
	"time"

	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// ProfileUseCase read/patch of the caller's own profile. Last-committed-write
// wins on concurrent edits; there is no version column.
type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

// NewProfileUseCase builds the use case.
func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// Get returns the caller's profile.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProfileResponse(p), nil
}

// Update applies a partial patch; absent fields are left untouched.
func (uc *ProfileUseCase) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.State != nil {
		p.State = *in.State
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProfileResponse(p), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:     p.UserID,
		FullName:   p.FullName,
		Phone:      p.Phone,
		AvatarURL:  p.AvatarURL,
		Address:    p.Address,
		City:       p.City,
		State:      p.State,
		PostalCode: p.PostalCode,
		UpdatedAt:  p.UpdatedAt,
	}
}
