package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/cart/model"
	"aguacates-backend/internal/shared/utils"
)

// CouponTerms are the coupon conditions the pricing engine applies.
// They mirror model.AppliedCoupon but live on the port boundary so the
// engine does not depend on the coupon domain.
type CouponTerms struct {
	Code          string
	Description   string
	DiscountType  string
	DiscountValue decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinPurchase   decimal.Decimal
	FreeShipping  bool
}

// CouponRejectedError carries the human-readable rejection reason for a
// coupon that exists but cannot be applied to this cart.
type CouponRejectedError struct {
	Reason string
}

func (e *CouponRejectedError) Error() string {
	return e.Reason
}

// CouponValidator resolves a coupon code against the current cart subtotal.
// A rejection is reported as *CouponRejectedError.
type CouponValidator interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal, email string) (*CouponTerms, error)
}

// RemoteQuote is a shipping response as received from the remote
// calculator, before any field validation. Fields are untyped because the
// remote payload is untrusted: each one is coerced individually and falls
// back to the default when it has the wrong shape.
type RemoteQuote struct {
	Cost                  interface{} `json:"cost"`
	FreeShipping          interface{} `json:"freeShipping"`
	FreeShippingMin       interface{} `json:"freeShippingMin"`
	AmountForFreeShipping interface{} `json:"amountForFreeShipping"`
	EstimatedDays         interface{} `json:"estimatedDays"`
	Message               interface{} `json:"message"`
}

// ShippingQuoter fetches a shipping quote from the remote calculator.
type ShippingQuoter interface {
	Quote(ctx context.Context, subtotal decimal.Decimal, location string) (*RemoteQuote, error)
}

// Config holds the local shipping defaults the engine falls back to when
// the remote calculator is unavailable or returns garbage.
type Config struct {
	DefaultCost     decimal.Decimal
	FreeShippingMin decimal.Decimal
	DefaultDays     int
	FreeDays        int
}

// DefaultQuote derives the local fallback quote for a given subtotal.
func (c Config) DefaultQuote(subtotal decimal.Decimal) model.ShippingQuote {
	free := subtotal.GreaterThan(c.FreeShippingMin)

	cost := c.DefaultCost
	days := c.DefaultDays
	message := "Envío: " + utils.FormatCOP(c.DefaultCost)
	if free {
		cost = decimal.Zero
		days = c.FreeDays
		message = "¡Envío GRATIS en tu pedido!"
	}

	remaining := c.FreeShippingMin.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return model.ShippingQuote{
		Cost:                  cost,
		FreeShipping:          free,
		FreeShippingMin:       c.FreeShippingMin,
		AmountForFreeShipping: remaining,
		EstimatedDays:         days,
		Message:               message,
	}
}

// Engine applies cart mutations and derives pricing. It owns no storage:
// callers load a cart, call an operation, and persist the returned value.
type Engine struct {
	quoter  ShippingQuoter
	coupons CouponValidator
	cfg     Config
	log     zerolog.Logger

	mu  sync.Mutex
	seq map[uuid.UUID]uint64
}

func NewEngine(quoter ShippingQuoter, coupons CouponValidator, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		quoter:  quoter,
		coupons: coupons,
		cfg:     cfg,
		log:     log,
		seq:     make(map[uuid.UUID]uint64),
	}
}

// NewCart builds an empty cart with the zero-subtotal default quote.
func (e *Engine) NewCart() model.Cart {
	return model.Cart{
		ID:            uuid.New(),
		SchemaVersion: model.SchemaVersion,
		Items:         []model.LineItem{},
		Shipping:      e.cfg.DefaultQuote(decimal.Zero),
	}
}

// AddItem merges the product into the cart and refreshes shipping.
func (e *Engine) AddItem(ctx context.Context, cart model.Cart, p model.ProductSnapshot, v *model.VariantSnapshot, qty int) model.Cart {
	updated := cart.AddItem(p, v, qty)
	return e.withShipping(ctx, updated)
}

// RemoveItem removes the exact (product, variant) line and refreshes shipping.
func (e *Engine) RemoveItem(ctx context.Context, cart model.Cart, productID uuid.UUID, variantID *uuid.UUID) model.Cart {
	updated := cart.RemoveItem(productID, variantID)
	return e.withShipping(ctx, updated)
}

// UpdateQuantity sets the line quantity, removing the line when qty <= 0,
// and refreshes shipping.
func (e *Engine) UpdateQuantity(ctx context.Context, cart model.Cart, productID uuid.UUID, qty int, variantID *uuid.UUID) model.Cart {
	updated := cart.UpdateQuantity(productID, qty, variantID)
	return e.withShipping(ctx, updated)
}

// ClearCart empties the cart, drops the coupon and resets shipping to the
// zero-subtotal default.
func (e *Engine) ClearCart(cart model.Cart) model.Cart {
	e.forget(cart.ID)
	return cart.Clear(e.cfg.DefaultQuote(decimal.Zero))
}

// ApplyCoupon validates the code against the current subtotal and, on
// success, replaces any previously applied coupon in one step. Shipping is
// refreshed because a free-shipping coupon changes the quote presentation.
func (e *Engine) ApplyCoupon(ctx context.Context, cart model.Cart, code, email string) (model.Cart, error) {
	terms, err := e.coupons.Validate(ctx, code, cart.Subtotal(), email)
	if err != nil {
		return cart, err
	}

	cart.Coupon = &model.AppliedCoupon{
		Code:          terms.Code,
		Description:   terms.Description,
		DiscountType:  terms.DiscountType,
		DiscountValue: terms.DiscountValue,
		MaxDiscount:   terms.MaxDiscount,
		MinPurchase:   terms.MinPurchase,
		FreeShipping:  terms.FreeShipping,
	}

	return e.withShipping(ctx, cart), nil
}

// RemoveCoupon drops the applied coupon and refreshes shipping.
func (e *Engine) RemoveCoupon(ctx context.Context, cart model.Cart) model.Cart {
	cart.Coupon = nil
	return e.withShipping(ctx, cart)
}

func (e *Engine) forget(cartID uuid.UUID) {
	e.mu.Lock()
	delete(e.seq, cartID)
	e.mu.Unlock()
}

func (e *Engine) withShipping(ctx context.Context, cart model.Cart) model.Cart {
	cart.Shipping = e.CalculateShipping(ctx, cart, "")
	return cart
}
