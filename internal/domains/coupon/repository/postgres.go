package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/coupon/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// GetActiveByCode implements RepositoryInterface.GetActiveByCode
func (r *postgresRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT
			id, code, description, discount_type, discount_value, max_discount,
			min_purchase, free_shipping, usage_limit, times_used,
			valid_from, valid_until, is_active, created_at, updated_at
		FROM coupons
		WHERE code = $1 AND is_active = true
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MaxDiscount,
		&c.MinPurchase,
		&c.FreeShipping,
		&c.UsageLimit,
		&c.TimesUsed,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &c, nil
}

// HasCustomerUsage implements RepositoryInterface.HasCustomerUsage
func (r *postgresRepository) HasCustomerUsage(ctx context.Context, couponID uuid.UUID, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM coupon_usage
			WHERE coupon_id = $1 AND customer_email = $2
		)
	`

	var used bool
	err := r.pool.QueryRow(ctx, query, couponID, strings.ToLower(strings.TrimSpace(email))).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("failed to check coupon usage: %w", err)
	}

	return used, nil
}

// RecordUsage implements RepositoryInterface.RecordUsage
func (r *postgresRepository) RecordUsage(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, email string, orderID uuid.UUID, discount decimal.Decimal) error {
	if _, err := tx.Exec(ctx, `
		UPDATE coupons SET times_used = times_used + 1, updated_at = NOW()
		WHERE id = $1
	`, couponID); err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO coupon_usage (id, coupon_id, customer_email, order_id, discount_amount, used_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New(), couponID, strings.ToLower(strings.TrimSpace(email)), orderID, discount); err != nil {
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}

	return nil
}
