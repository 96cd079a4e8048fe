package service

import (
	"context"

	"github.com/google/uuid"

	"aguacates-backend/internal/domains/cart/model"
)

// ServiceInterface is the session-scoped cart API. Every operation loads
// the session's cart, applies the change and persists the result before
// returning the updated cart.
type ServiceInterface interface {
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, variantID *uuid.UUID) (*model.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (*model.Cart, error)
	ApplyCoupon(ctx context.Context, sessionID, code, email string) (*model.Cart, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*model.Cart, error)
	CalculateShipping(ctx context.Context, sessionID, location string) (*model.Cart, error)
}
