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

	cartmodel "aguacates-backend/internal/domains/cart/model"
	couponmodel "aguacates-backend/internal/domains/coupon/model"
	"aguacates-backend/internal/domains/order/model"
)

// --- Mocks ---

type fakeTxRunner struct {
	runs int
	err  error
}

func (f *fakeTxRunner) ExecuteInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	f.runs++
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type mockOrderRepo struct {
	created *model.Order
	seq     int
}

func (m *mockOrderRepo) Create(_ context.Context, _ pgx.Tx, order *model.Order) error {
	m.created = order
	return nil
}

func (m *mockOrderRepo) NextSequenceForDate(_ context.Context, _ pgx.Tx, _ time.Time) (int, error) {
	m.seq++
	return m.seq, nil
}

func (m *mockOrderRepo) GetByNumber(_ context.Context, number string) (*model.Order, error) {
	if m.created != nil && m.created.OrderNumber == number {
		return m.created, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if m.created != nil && m.created.ID == id {
		return m.created, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) SetWhatsAppLink(_ context.Context, _, _ string) error {
	return nil
}

type fakeCartService struct {
	cart    *cartmodel.Cart
	cleared bool
}

func (f *fakeCartService) GetCart(context.Context, string) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) AddItem(context.Context, string, uuid.UUID, *uuid.UUID, int) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) RemoveItem(context.Context, string, uuid.UUID, *uuid.UUID) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) UpdateQuantity(context.Context, string, uuid.UUID, int, *uuid.UUID) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) ClearCart(context.Context, string) (*cartmodel.Cart, error) {
	f.cleared = true
	return &cartmodel.Cart{}, nil
}

func (f *fakeCartService) ApplyCoupon(context.Context, string, string, string) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) RemoveCoupon(context.Context, string) (*cartmodel.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartService) CalculateShipping(context.Context, string, string) (*cartmodel.Cart, error) {
	return f.cart, nil
}

type fakeCouponService struct {
	redeemed     bool
	redeemedCode string
}

func (f *fakeCouponService) Validate(context.Context, string, decimal.Decimal, string) (*couponmodel.ValidationResult, error) {
	return &couponmodel.ValidationResult{Valid: true}, nil
}

func (f *fakeCouponService) Redeem(_ context.Context, _ pgx.Tx, code, _ string, _ uuid.UUID, _ decimal.Decimal) error {
	f.redeemed = true
	f.redeemedCode = code
	return nil
}

// --- Helpers ---

func filledCart() *cartmodel.Cart {
	return &cartmodel.Cart{
		ID:            uuid.New(),
		SchemaVersion: cartmodel.SchemaVersion,
		Items: []cartmodel.LineItem{{
			Product: cartmodel.ProductSnapshot{
				ID:    uuid.New(),
				Name:  "Aguacate Hass",
				Price: decimal.NewFromInt(9000),
				Unit:  "kg",
			},
			Quantity: 2,
			Price:    decimal.NewFromInt(9000),
		}},
		Shipping: cartmodel.ShippingQuote{
			Cost:            decimal.NewFromInt(7400),
			FreeShippingMin: decimal.NewFromInt(68900),
			EstimatedDays:   1,
		},
	}
}

func checkoutRequest() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		CustomerName:  "Ana Pérez",
		CustomerPhone: "3001112233",
		Address:       "Calle 10 # 4-21",
		Location:      "Bogotá",
	}
}

func newTestOrderService(cart *cartmodel.Cart) (*OrderService, *mockOrderRepo, *fakeCartService, *fakeCouponService) {
	repo := &mockOrderRepo{}
	carts := &fakeCartService{cart: cart}
	coupons := &fakeCouponService{}
	svc := NewOrderService(&fakeTxRunner{}, repo, carts, coupons, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, repo, carts, coupons
}

// --- Tests ---

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _, _ := newTestOrderService(&cartmodel.Cart{})

	_, err := svc.Checkout(context.Background(), "s1", checkoutRequest())
	require.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestCheckoutFreezesTotals(t *testing.T) {
	svc, repo, carts, coupons := newTestOrderService(filledCart())

	order, err := svc.Checkout(context.Background(), "s1", checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "TA-20260315-0001", order.OrderNumber)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(18000)))
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(7400)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(25400)))
	assert.Equal(t, model.StatusPending, order.Status)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Aguacate Hass", order.Items[0].ProductName)
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(18000)))

	require.NotNil(t, repo.created)
	assert.False(t, coupons.redeemed, "no coupon, no redemption")
	assert.True(t, carts.cleared, "cart cleared after checkout")
}

func TestCheckoutSequencePerDay(t *testing.T) {
	svc, _, _, _ := newTestOrderService(filledCart())
	ctx := context.Background()

	first, err := svc.Checkout(ctx, "s1", checkoutRequest())
	require.NoError(t, err)

	svc.cart.(*fakeCartService).cart = filledCart()
	second, err := svc.Checkout(ctx, "s1", checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "TA-20260315-0001", first.OrderNumber)
	assert.Equal(t, "TA-20260315-0002", second.OrderNumber)
}

func TestCheckoutRedeemsCoupon(t *testing.T) {
	cart := filledCart()
	cart.Coupon = &cartmodel.AppliedCoupon{
		Code:          "HASS10",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
	}
	svc, repo, _, coupons := newTestOrderService(cart)

	order, err := svc.Checkout(context.Background(), "s1", &model.CheckoutRequest{
		CustomerName:  "Ana Pérez",
		CustomerPhone: "3001112233",
		CustomerEmail: "ana@example.com",
		Address:       "Calle 10 # 4-21",
		Location:      "Bogotá",
	})
	require.NoError(t, err)

	assert.True(t, coupons.redeemed)
	assert.Equal(t, "HASS10", coupons.redeemedCode)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "HASS10", *order.CouponCode)
	assert.True(t, order.Discount.Equal(decimal.NewFromInt(1800)))
	require.NotNil(t, repo.created)
}

func TestCheckoutSkipsRedemptionWhenCouponInert(t *testing.T) {
	cart := filledCart()
	// Applied but below its minimum purchase: no discount, no free
	// shipping, nothing to redeem.
	cart.Coupon = &cartmodel.AppliedCoupon{
		Code:          "GRANDE",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		MinPurchase:   decimal.NewFromInt(50000),
	}
	svc, _, _, coupons := newTestOrderService(cart)

	order, err := svc.Checkout(context.Background(), "s1", checkoutRequest())
	require.NoError(t, err)

	assert.False(t, coupons.redeemed)
	assert.True(t, order.Discount.IsZero())
}

func TestGetByNumber(t *testing.T) {
	svc, repo, _, _ := newTestOrderService(filledCart())

	created, err := svc.Checkout(context.Background(), "s1", checkoutRequest())
	require.NoError(t, err)
	repo.created = created

	fetched, err := svc.GetByNumber(context.Background(), created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.GetByNumber(context.Background(), "TA-19990101-9999")
	require.ErrorIs(t, err, model.ErrOrderNotFound)
}
