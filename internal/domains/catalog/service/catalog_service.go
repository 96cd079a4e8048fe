package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aguacates-backend/internal/domains/catalog/model"
	repo "aguacates-backend/internal/domains/catalog/repository"
	"aguacates-backend/pkg/cache"
	"aguacates-backend/pkg/logger"
)

const (
	productCacheTTL    = 5 * time.Minute
	productCachePrefix = "tus-aguacates:product:"
)

type CatalogService struct {
	repository repo.RepositoryInterface
	cache      cache.Cache
}

func NewCatalogService(r repo.RepositoryInterface, c cache.Cache) ServiceInterface {
	return &CatalogService{
		repository: r,
		cache:      c,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, category string, page, limit int) ([]*model.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	return s.repository.ListActive(ctx, category, limit, offset)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	cacheKey := productCachePrefix + id.String()

	var cached model.Product
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	product, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, product, productCacheTTL); err != nil {
		logger.Warn("Failed to cache product", map[string]interface{}{
			"product_id": id.String(),
			"error":      err.Error(),
		})
	}

	return product, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.repository.GetBySlug(ctx, slug)
}

func (s *CatalogService) ListVariants(ctx context.Context, productID uuid.UUID) ([]*model.ProductVariant, error) {
	return s.repository.ListVariants(ctx, productID)
}

// ResolveSnapshot implements ServiceInterface.ResolveSnapshot
func (s *CatalogService) ResolveSnapshot(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*model.Product, *model.ProductVariant, error) {
	if quantity < 1 {
		return nil, nil, fmt.Errorf("quantity must be >= 1")
	}

	product, err := s.repository.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if !product.IsActive {
		return nil, nil, model.ErrProductInactive
	}

	if variantID == nil {
		if !product.HasStock(quantity) {
			return nil, nil, model.ErrInsufficientStock
		}
		return product, nil, nil
	}

	variant, err := s.repository.GetVariant(ctx, *variantID)
	if err != nil {
		return nil, nil, err
	}
	if variant.ProductID != product.ID {
		return nil, nil, model.ErrVariantMismatch
	}
	if !variant.HasStock(quantity) {
		return nil, nil, model.ErrInsufficientStock
	}

	return product, variant, nil
}
