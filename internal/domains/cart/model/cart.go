package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SchemaVersion tags persisted carts. Records with an unknown version are
// discarded on load instead of failing, so shape changes never brick a
// returning visitor's session.
const SchemaVersion = 1

// ProductSnapshot is the slice of a catalog product a cart line keeps.
// The unit price is frozen separately at add time; later catalog price
// changes do not flow into existing lines.
type ProductSnapshot struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Unit          string           `json:"unit"`
	ImageURL      *string          `json:"image_url,omitempty"`
}

// VariantSnapshot is the variant slice captured alongside the product.
type VariantSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	VariantName  string          `json:"variant_name"`
	VariantValue string          `json:"variant_value"`
	Price        decimal.Decimal `json:"price"`
}

// LineItem is one cart line. Its identity is the (product id, variant id
// or none) pair; no two lines may share a key.
type LineItem struct {
	Product  ProductSnapshot  `json:"product"`
	Variant  *VariantSnapshot `json:"variant,omitempty"`
	Quantity int              `json:"quantity"`
	Price    decimal.Decimal  `json:"price"` // unit price frozen at add time
}

// Key returns the line's identity.
func (li *LineItem) Key() string {
	return lineKey(li.Product.ID, variantID(li.Variant))
}

// Subtotal is quantity times the frozen unit price.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// AppliedCoupon is the single coupon active on a cart. The discount
// amount is not stored: it is derived from the live subtotal on every
// totals read.
type AppliedCoupon struct {
	Code          string           `json:"code"`
	Description   string           `json:"description,omitempty"`
	DiscountType  string           `json:"discount_type"` // "percentage" or "fixed"
	DiscountValue decimal.Decimal  `json:"discount_value"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty"`
	MinPurchase   decimal.Decimal  `json:"min_purchase"`
	FreeShipping  bool             `json:"free_shipping"`
}

// DiscountFor derives the currency amount this coupon takes off the
// given subtotal.
//
//   - Below the minimum purchase the coupon produces no discount but
//     stays applied; the UI surfaces the pending state.
//   - Percentage discounts are capped at MaxDiscount when set.
//   - Fixed discounts never exceed the subtotal.
//
// Amounts are whole pesos, rounded half-up.
func (ac *AppliedCoupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if ac == nil {
		return decimal.Zero
	}
	if subtotal.LessThan(ac.MinPurchase) {
		return decimal.Zero
	}

	var discount decimal.Decimal

	switch ac.DiscountType {
	case "percentage":
		discount = subtotal.Mul(ac.DiscountValue).Div(decimal.NewFromInt(100))
		if ac.MaxDiscount != nil && discount.GreaterThan(*ac.MaxDiscount) {
			discount = *ac.MaxDiscount
		}
	case "fixed":
		discount = ac.DiscountValue
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(0)
}

// ShippingQuote is the cart's current shipping breakdown. It is never
// absent after initialization: a conservative default exists before any
// remote quote resolves and after any failed one.
type ShippingQuote struct {
	Cost                  decimal.Decimal `json:"cost"`
	FreeShipping          bool            `json:"free_shipping"`
	FreeShippingMin       decimal.Decimal `json:"free_shipping_min"`
	AmountForFreeShipping decimal.Decimal `json:"amount_for_free_shipping"`
	EstimatedDays         int             `json:"estimated_days"`
	Message               string          `json:"message"`
}

// Totals is the derived breakdown every checkout surface renders.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is a guest shopping session's full pricing state.
type Cart struct {
	ID            uuid.UUID      `json:"id"`
	SchemaVersion int            `json:"schema_version"`
	Items         []LineItem     `json:"items"`
	Coupon        *AppliedCoupon `json:"coupon,omitempty"`
	Shipping      ShippingQuote  `json:"shipping"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func lineKey(productID uuid.UUID, variantID *uuid.UUID) string {
	if variantID == nil {
		return productID.String()
	}
	return productID.String() + "-" + variantID.String()
}

func variantID(v *VariantSnapshot) *uuid.UUID {
	if v == nil {
		return nil
	}
	id := v.ID
	return &id
}

// findLine returns the index of the line with the given identity, or -1.
func (c *Cart) findLine(productID uuid.UUID, variantID *uuid.UUID) int {
	key := lineKey(productID, variantID)
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// UnitPrice resolves the price a new line freezes: the variant price when
// a variant is chosen, else the discount price when present and lower
// than the list price, else the list price.
func UnitPrice(p ProductSnapshot, v *VariantSnapshot) decimal.Decimal {
	if v != nil {
		return v.Price
	}
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price) {
		return *p.DiscountPrice
	}
	return p.Price
}

// AddItem merges qty into an existing line with the same identity or
// appends a new line with the frozen unit price. Returns an updated
// snapshot; the receiver is not mutated.
//
// Quantity is the caller's responsibility: stock capping and positivity
// are enforced by the catalog collaborator before reaching the cart.
func (c Cart) AddItem(p ProductSnapshot, v *VariantSnapshot, qty int) Cart {
	c.Items = cloneLines(c.Items)

	if i := c.findLine(p.ID, variantID(v)); i >= 0 {
		c.Items[i].Quantity += qty
		return c.touched()
	}

	c.Items = append(c.Items, LineItem{
		Product:  p,
		Variant:  v,
		Quantity: qty,
		Price:    UnitPrice(p, v),
	})
	return c.touched()
}

// RemoveItem drops the line matching the identity exactly. A nil
// variantID removes only the no-variant line for that product; lines
// with a variant on the same product are untouched.
func (c Cart) RemoveItem(productID uuid.UUID, variantID *uuid.UUID) Cart {
	key := lineKey(productID, variantID)

	items := make([]LineItem, 0, len(c.Items))
	for _, li := range c.Items {
		if li.Key() != key {
			items = append(items, li)
		}
	}
	c.Items = items
	return c.touched()
}

// UpdateQuantity replaces the line's quantity, removing the line when
// qty <= 0. No upper bound is enforced here.
func (c Cart) UpdateQuantity(productID uuid.UUID, qty int, variantID *uuid.UUID) Cart {
	if qty <= 0 {
		return c.RemoveItem(productID, variantID)
	}

	c.Items = cloneLines(c.Items)
	if i := c.findLine(productID, variantID); i >= 0 {
		c.Items[i].Quantity = qty
	}
	return c.touched()
}

// Clear empties the cart: items, coupon, and shipping back to the given
// default quote. Shipping is never left undefined.
func (c Cart) Clear(defaultQuote ShippingQuote) Cart {
	c.Items = nil
	c.Coupon = nil
	c.Shipping = defaultQuote
	return c.touched()
}

// Subtotal is the sum of line subtotals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Items {
		sum = sum.Add(c.Items[i].Subtotal())
	}
	return sum
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals derives the full breakdown from current state. It is total:
// every reachable state yields finite, non-negative amounts, so checkout
// rendering can never fail on a pricing read.
func (c *Cart) Totals() Totals {
	subtotal := c.Subtotal()
	discount := c.Coupon.DiscountFor(subtotal)

	shipping := c.Shipping.Cost
	if (c.Coupon != nil && c.Coupon.FreeShipping) || c.Shipping.FreeShipping {
		shipping = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    total,
	}
}

func (c Cart) touched() Cart {
	c.UpdatedAt = time.Now()
	return c
}

func cloneLines(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
