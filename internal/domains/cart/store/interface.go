package store

import (
	"context"

	"aguacates-backend/internal/domains/cart/model"
)

// Store persists carts keyed by session. Load reports found=false for
// missing carts and for carts written under an older schema version.
type Store interface {
	Load(ctx context.Context, sessionID string) (*model.Cart, bool, error)
	Save(ctx context.Context, sessionID string, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
