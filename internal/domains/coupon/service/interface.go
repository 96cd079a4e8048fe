package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/coupon/model"
)

type ServiceInterface interface {
	// Validate checks a coupon code against the current cart subtotal and
	// optional customer email. Ineligible coupons come back as a rejected
	// result with a reason, not as an error; errors are reserved for
	// infrastructure failures.
	Validate(ctx context.Context, code string, cartTotal decimal.Decimal, customerEmail string) (*model.ValidationResult, error)

	// Redeem records usage of a coupon at checkout, inside the checkout
	// transaction.
	Redeem(ctx context.Context, tx pgx.Tx, code, customerEmail string, orderID uuid.UUID, discount decimal.Decimal) error
}
