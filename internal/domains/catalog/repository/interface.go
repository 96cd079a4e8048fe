package repository

import (
	"context"

	"github.com/google/uuid"

	"aguacates-backend/internal/domains/catalog/model"
)

type RepositoryInterface interface {
	ListActive(ctx context.Context, category string, limit, offset int) ([]*model.Product, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]*model.ProductVariant, error)
	GetVariant(ctx context.Context, variantID uuid.UUID) (*model.ProductVariant, error)
}
