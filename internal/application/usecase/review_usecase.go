package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// ReviewUseCase product reviews, one per user per product.
type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewUseCase builds the use case.
func NewReviewUseCase(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create adds a review. A second review by the same user for the same product
// surfaces ErrDuplicate.
func (uc *ReviewUseCase) Create(ctx context.Context, userID, productID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	r := &entity.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// ListByProduct returns the reviews of a product, newest first.
func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) ([]*dto.ReviewResponse, error) {
	page.DefaultPage()
	reviews, err := uc.reviewRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out, nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
