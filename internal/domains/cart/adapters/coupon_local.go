package adapters

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/cart/engine"
	couponservice "aguacates-backend/internal/domains/coupon/service"
)

// LocalCouponValidator bridges the coupon domain into the cart engine's
// validator port.
type LocalCouponValidator struct {
	coupons couponservice.ServiceInterface
}

func NewLocalCouponValidator(coupons couponservice.ServiceInterface) *LocalCouponValidator {
	return &LocalCouponValidator{coupons: coupons}
}

func (v *LocalCouponValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal, email string) (*engine.CouponTerms, error) {
	result, err := v.coupons.Validate(ctx, code, subtotal, email)
	if err != nil {
		return nil, fmt.Errorf("validate coupon: %w", err)
	}

	if !result.Valid {
		return nil, &engine.CouponRejectedError{Reason: result.Reason}
	}

	return &engine.CouponTerms{
		Code:          result.Code,
		Description:   result.Description,
		DiscountType:  string(result.DiscountType),
		DiscountValue: result.DiscountValue,
		MaxDiscount:   result.MaxDiscount,
		MinPurchase:   result.MinPurchase,
		FreeShipping:  result.FreeShipping,
	}, nil
}
