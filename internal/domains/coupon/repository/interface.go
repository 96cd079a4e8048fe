package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/coupon/model"
)

type RepositoryInterface interface {
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)

	// HasCustomerUsage reports whether the email has already redeemed the
	// coupon (one use per customer).
	HasCustomerUsage(ctx context.Context, couponID uuid.UUID, email string) (bool, error)

	// RecordUsage increments times_used and inserts the usage row inside
	// the caller's checkout transaction.
	RecordUsage(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, email string, orderID uuid.UUID, discount decimal.Decimal) error
}
