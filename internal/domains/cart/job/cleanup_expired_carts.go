package job

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"aguacates-backend/internal/domains/cart/model"
	"aguacates-backend/pkg/cache"
	"aguacates-backend/pkg/logger"
)

const cartKeyPattern = "tus-aguacates:cart:*"

type CleanupCartsPayload struct {
	BatchSize int `json:"batch_size,omitempty"`
	StaleDays int `json:"stale_days,omitempty"`
}

// KeyScanner walks cache keys in batches. Satisfied by the Redis cache
// implementation; the generic cache interface stays scan-free.
type KeyScanner interface {
	ScanKeys(ctx context.Context, pattern string, limit int) ([]string, error)
}

// CleanupCartsHandler prunes cart records Redis TTL alone does not cover:
// carts written under an outdated schema and empty carts nobody touched
// for days. Active carts always survive.
type CleanupCartsHandler struct {
	scanner KeyScanner
	cache   cache.Cache
}

func NewCleanupCartsHandler(scanner KeyScanner, c cache.Cache) *CleanupCartsHandler {
	return &CleanupCartsHandler{
		scanner: scanner,
		cache:   c,
	}
}

func (h *CleanupCartsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CleanupCartsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Failed to unmarshal cleanup carts payload, using defaults", err)
	}
	if payload.BatchSize <= 0 {
		payload.BatchSize = 500
	}
	if payload.StaleDays <= 0 {
		payload.StaleDays = 7
	}

	cutoff := time.Now().AddDate(0, 0, -payload.StaleDays)

	keys, err := h.scanner.ScanKeys(ctx, cartKeyPattern, payload.BatchSize)
	if err != nil {
		logger.Error("Failed to scan cart keys", err)
		return err
	}

	var removed int
	for _, key := range keys {
		if h.shouldRemove(ctx, key, cutoff) {
			if err := h.cache.Delete(ctx, key); err != nil {
				logger.Error("Failed to delete stale cart", err)
				continue
			}
			removed++
		}
	}

	log.Info().
		Int("scanned", len(keys)).
		Int("removed", removed).
		Msg("Cart cleanup finished")

	return nil
}

func (h *CleanupCartsHandler) shouldRemove(ctx context.Context, key string, cutoff time.Time) bool {
	if !strings.HasPrefix(key, strings.TrimSuffix(cartKeyPattern, "*")) {
		return false
	}

	var cart model.Cart
	found, err := h.cache.Get(ctx, key, &cart)
	if err != nil || !found {
		// Unreadable records are junk under our prefix.
		return err != nil
	}

	if cart.SchemaVersion != model.SchemaVersion {
		return true
	}
	return cart.IsEmpty() && cart.UpdatedAt.Before(cutoff)
}
