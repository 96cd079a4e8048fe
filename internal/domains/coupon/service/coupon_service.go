package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/coupon/model"
	repo "aguacates-backend/internal/domains/coupon/repository"
	"aguacates-backend/internal/shared/utils"
)

type CouponService struct {
	repository repo.RepositoryInterface
	now        func() time.Time
}

func NewCouponService(r repo.RepositoryInterface) ServiceInterface {
	return &CouponService{
		repository: r,
		now:        time.Now,
	}
}

// Validate implements ServiceInterface.Validate
//
// The checks run in the storefront's historical order: existence/active,
// expiry, start date, minimum purchase, global usage limit, one use per
// customer. The first failing check decides the rejection reason.
func (s *CouponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal, customerEmail string) (*model.ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !model.IsValidCode(code) {
		return model.Rejected("Código de cupón inválido"), nil
	}

	if cartTotal.IsNegative() {
		return model.Rejected("El total del carrito no puede ser negativo"), nil
	}

	coupon, err := s.repository.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrCouponNotFound) {
			return model.Rejected("Cupón no encontrado o inválido"), nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	now := s.now()
	if coupon.IsExpired(now) {
		return model.Rejected("Cupón expirado"), nil
	}
	if coupon.IsNotYetValid(now) {
		return model.Rejected("Cupón no válido aún"), nil
	}

	if cartTotal.LessThan(coupon.MinPurchase) {
		return model.Rejected(fmt.Sprintf(
			"El pedido mínimo para usar este cupón es de %s",
			utils.FormatCOP(coupon.MinPurchase),
		)), nil
	}

	if coupon.IsExhausted() {
		return model.Rejected("Este cupón ha alcanzado su límite de uso"), nil
	}

	if customerEmail != "" {
		used, err := s.repository.HasCustomerUsage(ctx, coupon.ID, customerEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to check coupon usage: %w", err)
		}
		if used {
			return model.Rejected("Ya has usado este cupón anteriormente"), nil
		}
	}

	return &model.ValidationResult{
		Valid:         true,
		Code:          coupon.Code,
		Description:   coupon.Description,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
		MaxDiscount:   coupon.MaxDiscount,
		MinPurchase:   coupon.MinPurchase,
		FreeShipping:  coupon.FreeShipping,
	}, nil
}

// Redeem implements ServiceInterface.Redeem
func (s *CouponService) Redeem(ctx context.Context, tx pgx.Tx, code, customerEmail string, orderID uuid.UUID, discount decimal.Decimal) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	coupon, err := s.repository.GetActiveByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to load coupon for redemption: %w", err)
	}

	return s.repository.RecordUsage(ctx, tx, coupon.ID, customerEmail, orderID, discount)
}
