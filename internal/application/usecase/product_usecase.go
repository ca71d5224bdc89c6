package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductCache is a best-effort read cache. A nil implementation or a failing
// backend must never surface an error to callers; misses fall through to the
// database.
type ProductCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ProductUseCase product listing CRUD. Stock is never mutated here; only the
// checkout transaction and the artisan's own updates touch it.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	artisanRepo  repository.ArtisanProfileRepository
	cache        ProductCache
	cacheTTL     time.Duration
}

// NewProductUseCase builds the use case. cache may be nil.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	artisanRepo repository.ArtisanProfileRepository,
	cache ProductCache,
	cacheTTL time.Duration,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		artisanRepo:  artisanRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Create lists a new product under the caller's shop. The SKU is generated
// from the category slug plus a random suffix.
func (uc *ProductUseCase) Create(ctx context.Context, artisanUserID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	shop, err := uc.artisanRepo.GetByUserID(ctx, artisanUserID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrForbidden
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil || category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		ArtisanID:     shop.ID,
		CategoryID:    category.ID,
		SKU:           generateSKU(category.Slug),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		Status:        entity.ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Get returns one product, served from the cache when possible.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	key := productCacheKey(id)
	if uc.cache != nil {
		var cached dto.ProductResponse
		if ok, err := uc.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(p)
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, resp, uc.cacheTTL)
	}
	return resp, nil
}

// Update patches the caller's own product and invalidates its cache entry.
func (uc *ProductUseCase) Update(ctx context.Context, artisanUserID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	shop, err := uc.artisanRepo.GetByUserID(ctx, artisanUserID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrForbidden
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.ArtisanID != shop.ID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.StockQuantity = *in.StockQuantity
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, productCacheKey(p.ID))
	}
	return toProductResponse(p), nil
}

// List returns products matching the filters, newest first.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ListProductsRequest) ([]*dto.ProductResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		CategoryID: in.CategoryID,
		ArtisanID:  in.ArtisanID,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.MinPrice != "" {
		min, err := decimal.NewFromString(in.MinPrice)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.MinPrice = &min
	}
	if in.MaxPrice != "" {
		max, err := decimal.NewFromString(in.MaxPrice)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.MaxPrice = &max
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func productCacheKey(id string) string {
	return "product:" + id
}

const skuAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateSKU builds e.g. POTTE-7F3K9C from the category slug.
func generateSKU(categorySlug string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(categorySlug, "-", ""))
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	if prefix == "" {
		prefix = "ITEM"
	}
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = skuAlphabet[int(b)%len(skuAlphabet)]
	}
	return fmt.Sprintf("%s-%s", prefix, buf)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		ArtisanID:     p.ArtisanID,
		CategoryID:    p.CategoryID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
