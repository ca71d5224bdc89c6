package usecase

import (
	"context"

	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

// CategoryUseCase read-only category listing.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// ListActive returns the active categories.
func (uc *CategoryUseCase) ListActive(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.ListActive(ctx)
}
