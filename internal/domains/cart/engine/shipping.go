package engine

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/cart/model"
)

// CalculateShipping resolves the shipping quote for the cart's current
// subtotal. The remote calculator is consulted when configured; any
// failure, malformed field, or stale response falls back to the local
// default so checkout never blocks on shipping.
func (e *Engine) CalculateShipping(ctx context.Context, cart model.Cart, location string) model.ShippingQuote {
	subtotal := cart.Subtotal()

	// A corrupt snapshot could yield a negative subtotal. Treat it as an
	// empty cart and skip the network round trip entirely.
	if subtotal.IsNegative() {
		e.log.Warn().
			Str("cart_id", cart.ID.String()).
			Str("subtotal", subtotal.String()).
			Msg("negative cart subtotal, using zero default quote")
		return e.cfg.DefaultQuote(decimal.Zero)
	}

	fallback := e.cfg.DefaultQuote(subtotal)
	if e.quoter == nil {
		return fallback
	}

	token := e.nextSeq(cart.ID)

	remote, err := e.quoter.Quote(ctx, subtotal, location)
	if err != nil || remote == nil {
		e.log.Warn().
			Err(err).
			Str("cart_id", cart.ID.String()).
			Msg("shipping quote failed, using default")
		return fallback
	}

	// A newer calculation started for this cart while we were waiting on
	// the remote. Its result supersedes ours; keep the current quote.
	if !e.currentSeq(cart.ID, token) {
		return cart.Shipping
	}

	return e.mergeQuote(subtotal, remote, fallback)
}

// mergeQuote validates the remote payload field by field. Any field with
// the wrong JSON type keeps the default value, and the derived fields are
// recomputed locally so the quote is always internally consistent.
func (e *Engine) mergeQuote(subtotal decimal.Decimal, remote *RemoteQuote, fallback model.ShippingQuote) model.ShippingQuote {
	quote := fallback

	if cost, ok := asAmount(remote.Cost); ok {
		quote.Cost = cost
	}
	if min, ok := asAmount(remote.FreeShippingMin); ok {
		quote.FreeShippingMin = min
	}
	if free, ok := remote.FreeShipping.(bool); ok {
		quote.FreeShipping = free
	}
	if days, ok := asDays(remote.EstimatedDays); ok {
		quote.EstimatedDays = days
	}
	if msg, ok := remote.Message.(string); ok && msg != "" {
		quote.Message = msg
	}

	// The threshold rule is authoritative over whatever the remote said.
	if subtotal.GreaterThan(quote.FreeShippingMin) {
		quote.FreeShipping = true
	}
	if quote.FreeShipping {
		quote.Cost = decimal.Zero
	}

	// Never trust the remote's remaining-amount arithmetic.
	remaining := quote.FreeShippingMin.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	quote.AmountForFreeShipping = remaining

	return quote
}

// asAmount accepts only JSON numbers that are finite and non-negative.
// Strings like "7400" are rejected: a calculator that serializes money as
// text is misconfigured and its values are not comparable.
func asAmount(v interface{}) (decimal.Decimal, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func asDays(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (e *Engine) nextSeq(cartID uuid.UUID) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq[cartID]++
	return e.seq[cartID]
}

func (e *Engine) currentSeq(cartID uuid.UUID, token uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq[cartID] == token
}
