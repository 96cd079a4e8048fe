package store

import (
	"context"
	"fmt"
	"time"

	"aguacates-backend/internal/domains/cart/model"
	"aguacates-backend/pkg/cache"
	"aguacates-backend/pkg/logger"
)

const keyPrefix = "tus-aguacates:cart:"

// RedisStore keeps carts in Redis with a sliding TTL. Every Save refreshes
// the expiry so active carts survive; abandoned ones age out.
type RedisStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisStore(c cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func cartKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*model.Cart, bool, error) {
	var cart model.Cart

	found, err := s.cache.Get(ctx, cartKey(sessionID), &cart)
	if err != nil {
		return nil, false, fmt.Errorf("load cart: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	// Carts written under an older schema are discarded rather than
	// migrated: a cart is cheap to rebuild and a bad migration is not.
	if cart.SchemaVersion != model.SchemaVersion {
		logger.Info("Discarding cart with outdated schema", map[string]interface{}{
			"session_id":     sessionID,
			"schema_version": cart.SchemaVersion,
		})
		if err := s.cache.Delete(ctx, cartKey(sessionID)); err != nil {
			return nil, false, fmt.Errorf("discard outdated cart: %w", err)
		}
		return nil, false, nil
	}

	return &cart, true, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cart *model.Cart) error {
	if err := s.cache.Set(ctx, cartKey(sessionID), cart, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
