package service

import (
	"context"

	"github.com/google/uuid"

	"aguacates-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	ListProducts(ctx context.Context, category string, page, limit int) ([]*model.Product, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]*model.ProductVariant, error)

	// ResolveSnapshot loads the product (and optional variant) a cart line
	// will snapshot, enforcing activity and stock. The stock check lives
	// here, on the collaborator side, not in the cart engine.
	ResolveSnapshot(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*model.Product, *model.ProductVariant, error)
}
