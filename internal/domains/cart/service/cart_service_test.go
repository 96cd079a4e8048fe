package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aguacates-backend/internal/domains/cart/engine"
	cartmodel "aguacates-backend/internal/domains/cart/model"
	catalogmodel "aguacates-backend/internal/domains/catalog/model"
)

// --- Mocks ---

type fakeStore struct {
	carts map[string]*cartmodel.Cart
	saves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{carts: make(map[string]*cartmodel.Cart)}
}

func (f *fakeStore) Load(_ context.Context, sessionID string) (*cartmodel.Cart, bool, error) {
	cart, ok := f.carts[sessionID]
	if !ok {
		return nil, false, nil
	}
	copied := *cart
	return &copied, true, nil
}

func (f *fakeStore) Save(_ context.Context, sessionID string, cart *cartmodel.Cart) error {
	copied := *cart
	f.carts[sessionID] = &copied
	f.saves++
	return nil
}

func (f *fakeStore) Delete(_ context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

type fakeCatalog struct {
	products map[uuid.UUID]*catalogmodel.Product
	variants map[uuid.UUID]*catalogmodel.ProductVariant
	resolves int
}

func newFakeCatalog(products ...*catalogmodel.Product) *fakeCatalog {
	byID := make(map[uuid.UUID]*catalogmodel.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &fakeCatalog{
		products: byID,
		variants: make(map[uuid.UUID]*catalogmodel.ProductVariant),
	}
}

func (f *fakeCatalog) ListProducts(context.Context, string, int, int) ([]*catalogmodel.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id uuid.UUID) (*catalogmodel.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalogmodel.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) GetProductBySlug(context.Context, string) (*catalogmodel.Product, error) {
	return nil, catalogmodel.ErrProductNotFound
}

func (f *fakeCatalog) ListVariants(context.Context, uuid.UUID) ([]*catalogmodel.ProductVariant, error) {
	return nil, nil
}

func (f *fakeCatalog) ResolveSnapshot(_ context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*catalogmodel.Product, *catalogmodel.ProductVariant, error) {
	f.resolves++

	p, ok := f.products[productID]
	if !ok {
		return nil, nil, catalogmodel.ErrProductNotFound
	}
	if !p.HasStock(quantity) {
		return nil, nil, catalogmodel.ErrInsufficientStock
	}
	if variantID == nil {
		return p, nil, nil
	}
	v, ok := f.variants[*variantID]
	if !ok {
		return nil, nil, catalogmodel.ErrVariantNotFound
	}
	return p, v, nil
}

type fakeValidator struct {
	terms *engine.CouponTerms
	err   error
}

func (f *fakeValidator) Validate(context.Context, string, decimal.Decimal, string) (*engine.CouponTerms, error) {
	return f.terms, f.err
}

// --- Helpers ---

func testProduct(price int64, stock int) *catalogmodel.Product {
	return &catalogmodel.Product{
		ID:       uuid.New(),
		Name:     "Aguacate Hass",
		Slug:     "aguacate-hass",
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Unit:     "kg",
		IsActive: true,
	}
}

func newTestService(catalog *fakeCatalog, validator engine.CouponValidator) (*CartService, *fakeStore) {
	st := newFakeStore()
	eng := engine.NewEngine(nil, validator, engine.Config{
		DefaultCost:     decimal.NewFromInt(7400),
		FreeShippingMin: decimal.NewFromInt(68900),
		DefaultDays:     1,
		FreeDays:        2,
	}, zerolog.Nop())

	return NewCartService(st, eng, catalog), st
}

// --- Tests ---

func TestCartServiceGetCartNewSession(t *testing.T) {
	svc, st := newTestService(newFakeCatalog(), &fakeValidator{})

	cart, err := svc.GetCart(context.Background(), "fresh")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, st.saves, "reads do not persist")
}

func TestCartServiceAddItemPersists(t *testing.T) {
	p := testProduct(9000, 10)
	catalog := newFakeCatalog(p)
	svc, st := newTestService(catalog, &fakeValidator{})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", p.ID, nil, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, st.saves)

	// Second add merges into the stored cart.
	cart, err = svc.AddItem(ctx, "s1", p.ID, nil, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartServiceAddItemStockError(t *testing.T) {
	p := testProduct(9000, 1)
	svc, st := newTestService(newFakeCatalog(p), &fakeValidator{})

	_, err := svc.AddItem(context.Background(), "s1", p.ID, nil, 5)
	require.ErrorIs(t, err, catalogmodel.ErrInsufficientStock)
	assert.Equal(t, 0, st.saves, "failed adds do not persist")
}

func TestCartServiceUpdateQuantityStockCheck(t *testing.T) {
	p := testProduct(9000, 3)
	catalog := newFakeCatalog(p)
	svc, _ := newTestService(catalog, &fakeValidator{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", p.ID, nil, 2)
	require.NoError(t, err)
	resolvesAfterAdd := catalog.resolves

	// Lowering the quantity skips the stock check.
	cart, err := svc.UpdateQuantity(ctx, "s1", p.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, resolvesAfterAdd, catalog.resolves)

	// Raising it past stock fails.
	_, err = svc.UpdateQuantity(ctx, "s1", p.ID, 5, nil)
	require.ErrorIs(t, err, catalogmodel.ErrInsufficientStock)
}

func TestCartServiceUpdateQuantityToZeroRemoves(t *testing.T) {
	p := testProduct(9000, 10)
	svc, _ := newTestService(newFakeCatalog(p), &fakeValidator{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", p.ID, nil, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "s1", p.ID, 0, nil)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartServiceCouponFlow(t *testing.T) {
	p := testProduct(20000, 10)
	validator := &fakeValidator{terms: &engine.CouponTerms{
		Code:          "HASS10",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
	}}
	svc, _ := newTestService(newFakeCatalog(p), validator)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", p.ID, nil, 1)
	require.NoError(t, err)

	cart, err := svc.ApplyCoupon(ctx, "s1", "HASS10", "")
	require.NoError(t, err)
	require.NotNil(t, cart.Coupon)
	assert.True(t, cart.Totals().Discount.Equal(decimal.NewFromInt(2000)))

	// The coupon survives a reload.
	cart, err = svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, cart.Coupon)

	cart, err = svc.RemoveCoupon(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, cart.Coupon)
}

func TestCartServiceApplyCouponRejected(t *testing.T) {
	p := testProduct(20000, 10)
	validator := &fakeValidator{err: &engine.CouponRejectedError{Reason: "Cupón expirado"}}
	svc, st := newTestService(newFakeCatalog(p), validator)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", p.ID, nil, 1)
	require.NoError(t, err)
	savesBefore := st.saves

	_, err = svc.ApplyCoupon(ctx, "s1", "MALO", "")
	var rejected *engine.CouponRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, savesBefore, st.saves, "rejected coupons do not persist")
}

func TestCartServiceClearCart(t *testing.T) {
	p := testProduct(20000, 10)
	svc, _ := newTestService(newFakeCatalog(p), &fakeValidator{})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", p.ID, nil, 2)
	require.NoError(t, err)

	cart, err := svc.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
