package repository

import (
	"context"

	"aguacates-backend/internal/domains/shipping/model"
)

type RepositoryInterface interface {
	// ListActiveForZone returns active rules covering the zone ordered by
	// priority ascending.
	ListActiveForZone(ctx context.Context, zone string) ([]*model.Rule, error)
}
