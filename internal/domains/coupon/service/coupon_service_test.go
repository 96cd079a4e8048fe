package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aguacates-backend/internal/domains/coupon/model"
)

// --- Mock repository ---

type mockCouponRepo struct {
	coupons map[string]*model.Coupon
	usedBy  map[string]bool

	recordedCoupon uuid.UUID
	recordedEmail  string
}

func newMockRepo(coupons ...*model.Coupon) *mockCouponRepo {
	byCode := make(map[string]*model.Coupon, len(coupons))
	for _, c := range coupons {
		byCode[c.Code] = c
	}
	return &mockCouponRepo{coupons: byCode, usedBy: make(map[string]bool)}
}

func (m *mockCouponRepo) GetActiveByCode(_ context.Context, code string) (*model.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, model.ErrCouponNotFound
	}
	return c, nil
}

func (m *mockCouponRepo) HasCustomerUsage(_ context.Context, couponID uuid.UUID, email string) (bool, error) {
	return m.usedBy[couponID.String()+":"+email], nil
}

func (m *mockCouponRepo) RecordUsage(_ context.Context, _ pgx.Tx, couponID uuid.UUID, email string, _ uuid.UUID, _ decimal.Decimal) error {
	m.recordedCoupon = couponID
	m.recordedEmail = email
	return nil
}

// --- Helpers ---

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newServiceAt(repo *mockCouponRepo, now time.Time) *CouponService {
	svc := NewCouponService(repo).(*CouponService)
	svc.now = func() time.Time { return now }
	return svc
}

func activeCoupon(code string) *model.Coupon {
	return &model.Coupon{
		ID:            uuid.New(),
		Code:          code,
		Description:   "10% de descuento",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(v int) *int              { return &v }

// --- Tests ---

func TestCouponValidate(t *testing.T) {
	tests := []struct {
		name      string
		coupon    *model.Coupon
		code      string
		cartTotal int64
		email     string
		wantValid bool
		reason    string
	}{
		{
			name:      "valid coupon",
			coupon:    activeCoupon("HASS10"),
			code:      "HASS10",
			cartTotal: 20000,
			wantValid: true,
		},
		{
			name:      "code is normalized to uppercase",
			coupon:    activeCoupon("HASS10"),
			code:      "  hass10 ",
			cartTotal: 20000,
			wantValid: true,
		},
		{
			name:      "malformed code",
			code:      "a!",
			cartTotal: 20000,
			reason:    "Código de cupón inválido",
		},
		{
			name:      "negative cart total",
			coupon:    activeCoupon("HASS10"),
			code:      "HASS10",
			cartTotal: -1,
			reason:    "El total del carrito no puede ser negativo",
		},
		{
			name:      "unknown code",
			code:      "NADA",
			cartTotal: 20000,
			reason:    "Cupón no encontrado o inválido",
		},
		{
			name: "expired",
			coupon: func() *model.Coupon {
				c := activeCoupon("VIEJO")
				c.ValidUntil = timePtr(testNow.Add(-time.Hour))
				return c
			}(),
			code:      "VIEJO",
			cartTotal: 20000,
			reason:    "Cupón expirado",
		},
		{
			name: "not yet valid",
			coupon: func() *model.Coupon {
				c := activeCoupon("FUTURO")
				c.ValidFrom = timePtr(testNow.Add(time.Hour))
				return c
			}(),
			code:      "FUTURO",
			cartTotal: 20000,
			reason:    "Cupón no válido aún",
		},
		{
			name: "below minimum purchase",
			coupon: func() *model.Coupon {
				c := activeCoupon("GRANDE")
				c.MinPurchase = decimal.NewFromInt(50000)
				return c
			}(),
			code:      "GRANDE",
			cartTotal: 20000,
			reason:    "El pedido mínimo para usar este cupón es de $50.000",
		},
		{
			name: "exhausted",
			coupon: func() *model.Coupon {
				c := activeCoupon("AGOTADO")
				c.UsageLimit = intPtr(100)
				c.TimesUsed = 100
				return c
			}(),
			code:      "AGOTADO",
			cartTotal: 20000,
			reason:    "Este cupón ha alcanzado su límite de uso",
		},
		{
			name: "expiry checked before minimum purchase",
			coupon: func() *model.Coupon {
				c := activeCoupon("AMBOS")
				c.ValidUntil = timePtr(testNow.Add(-time.Hour))
				c.MinPurchase = decimal.NewFromInt(50000)
				return c
			}(),
			code:      "AMBOS",
			cartTotal: 20000,
			reason:    "Cupón expirado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var repo *mockCouponRepo
			if tt.coupon != nil {
				repo = newMockRepo(tt.coupon)
			} else {
				repo = newMockRepo()
			}
			svc := newServiceAt(repo, testNow)

			result, err := svc.Validate(context.Background(), tt.code, decimal.NewFromInt(tt.cartTotal), tt.email)
			require.NoError(t, err)

			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.Equal(t, tt.reason, result.Reason)
			}
		})
	}
}

func TestCouponValidateReturnsTerms(t *testing.T) {
	max := decimal.NewFromInt(5000)
	c := activeCoupon("HASS10")
	c.MaxDiscount = &max
	c.MinPurchase = decimal.NewFromInt(10000)
	c.FreeShipping = true

	svc := newServiceAt(newMockRepo(c), testNow)

	result, err := svc.Validate(context.Background(), "HASS10", decimal.NewFromInt(20000), "")
	require.NoError(t, err)
	require.True(t, result.Valid)

	assert.Equal(t, "HASS10", result.Code)
	assert.Equal(t, model.DiscountTypePercentage, result.DiscountType)
	assert.True(t, result.DiscountValue.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, result.MaxDiscount)
	assert.True(t, result.MaxDiscount.Equal(max))
	assert.True(t, result.MinPurchase.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.FreeShipping)
}

func TestCouponValidatePerCustomerUsage(t *testing.T) {
	c := activeCoupon("UNAVEZ")
	repo := newMockRepo(c)
	repo.usedBy[c.ID.String()+":ana@example.com"] = true
	svc := newServiceAt(repo, testNow)

	t.Run("already used by this customer", func(t *testing.T) {
		result, err := svc.Validate(context.Background(), "UNAVEZ", decimal.NewFromInt(20000), "ana@example.com")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "Ya has usado este cupón anteriormente", result.Reason)
	})

	t.Run("anonymous customers skip the check", func(t *testing.T) {
		result, err := svc.Validate(context.Background(), "UNAVEZ", decimal.NewFromInt(20000), "")
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})
}

func TestCouponRedeem(t *testing.T) {
	c := activeCoupon("HASS10")
	repo := newMockRepo(c)
	svc := newServiceAt(repo, testNow)

	err := svc.Redeem(context.Background(), nil, "hass10", "ana@example.com", uuid.New(), decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.Equal(t, c.ID, repo.recordedCoupon)
	assert.Equal(t, "ana@example.com", repo.recordedEmail)
}
