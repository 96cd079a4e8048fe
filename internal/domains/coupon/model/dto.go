package model

import (
	"github.com/shopspring/decimal"
)

// ValidationResult is the outcome of validating a coupon code against a
// cart subtotal. Rejections carry a customer-facing reason; they are not
// errors, callers decide the messaging.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`

	// Terms of the coupon when Valid. The discount amount itself is not
	// computed here: the cart engine derives it from the live subtotal.
	Code          string           `json:"code,omitempty"`
	Description   string           `json:"description,omitempty"`
	DiscountType  DiscountType     `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal  `json:"discount_value,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty"`
	MinPurchase   decimal.Decimal  `json:"min_purchase,omitempty"`
	FreeShipping  bool             `json:"free_shipping,omitempty"`
}

func Rejected(reason string) *ValidationResult {
	return &ValidationResult{Valid: false, Reason: reason}
}
