package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType represents valid discount types.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (dt DiscountType) IsValid() bool {
	switch dt {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// codePattern: uppercase alphanumeric plus hyphen/underscore, 3-20 chars.
var codePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)

// IsValidCode reports whether a normalized code has an acceptable shape.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// Coupon is a storefront discount code.
type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Description string    `json:"description" db:"description"`

	DiscountType  DiscountType     `json:"discount_type" db:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value" db:"discount_value"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty" db:"max_discount"`

	MinPurchase  decimal.Decimal `json:"min_purchase" db:"min_purchase"`
	FreeShipping bool            `json:"free_shipping" db:"free_shipping"`

	UsageLimit *int `json:"usage_limit,omitempty" db:"usage_limit"`
	TimesUsed  int  `json:"times_used" db:"times_used"`

	ValidFrom  *time.Time `json:"valid_from,omitempty" db:"valid_from"`
	ValidUntil *time.Time `json:"valid_until,omitempty" db:"valid_until"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsExpired reports whether the coupon's validity window has closed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ValidUntil != nil && c.ValidUntil.Before(now)
}

// IsNotYetValid reports whether the coupon has not started yet.
func (c *Coupon) IsNotYetValid(now time.Time) bool {
	return c.ValidFrom != nil && c.ValidFrom.After(now)
}

// IsExhausted reports whether the global usage limit has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.TimesUsed >= *c.UsageLimit
}

// Usage records one customer redeeming a coupon on an order.
type Usage struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	CouponID       uuid.UUID       `json:"coupon_id" db:"coupon_id"`
	CustomerEmail  string          `json:"customer_email" db:"customer_email"`
	OrderID        uuid.UUID       `json:"order_id" db:"order_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	UsedAt         time.Time       `json:"used_at" db:"used_at"`
}
