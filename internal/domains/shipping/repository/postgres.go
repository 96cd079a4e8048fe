package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"aguacates-backend/internal/domains/shipping/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// ListActiveForZone implements RepositoryInterface.ListActiveForZone
func (r *postgresRepository) ListActiveForZone(ctx context.Context, zone string) ([]*model.Rule, error) {
	query := `
		SELECT
			id, name, zones, cost, free_shipping_min, estimated_days,
			free_days, priority, is_active, created_at, updated_at
		FROM shipping_rules
		WHERE is_active = true AND $1 = ANY(zones)
		ORDER BY priority ASC
	`

	rows, err := r.pool.Query(ctx, query, zone)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping rules: %w", err)
	}
	defer rows.Close()

	var rules []*model.Rule
	for rows.Next() {
		var rule model.Rule
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Zones,
			&rule.Cost,
			&rule.FreeShippingMin,
			&rule.EstimatedDays,
			&rule.FreeDays,
			&rule.Priority,
			&rule.IsActive,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shipping rule: %w", err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shipping rules: %w", err)
	}

	return rules, nil
}
