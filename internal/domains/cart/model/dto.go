package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string  `json:"product_id"`
	VariantID *string `json:"variant_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUIDv4),
		validation.Field(&r.VariantID, validation.NilOrNotEmpty, is.UUIDv4),
		validation.Field(&r.Quantity, validation.Min(1), validation.Max(100)),
	)
}

// UpdateQuantityRequest is the body of PUT /cart/items/:productID.
// Zero or negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity  int     `json:"quantity"`
	VariantID *string `json:"variant_id,omitempty"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Max(100)),
		validation.Field(&r.VariantID, validation.NilOrNotEmpty, is.UUIDv4),
	)
}

// ApplyCouponRequest is the body of POST /cart/coupon.
type ApplyCouponRequest struct {
	Code  string `json:"code"`
	Email string `json:"email,omitempty"`
}

func (r ApplyCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(3, 20)),
		validation.Field(&r.Email, is.Email),
	)
}

// ShippingRequest is the body of POST /cart/shipping.
type ShippingRequest struct {
	Location string `json:"location,omitempty"`
}

func (r ShippingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Location, validation.Length(0, 100)),
	)
}

// CartResponse is the cart representation every cart endpoint returns.
type CartResponse struct {
	ID            string         `json:"id"`
	Items         []LineItem     `json:"items"`
	ItemCount     int            `json:"item_count"`
	Coupon        *AppliedCoupon `json:"coupon,omitempty"`
	CouponPending bool           `json:"coupon_pending,omitempty"` // applied but below min purchase
	Shipping      ShippingQuote  `json:"shipping"`
	Totals        Totals         `json:"totals"`
}

// ToResponse builds the API representation of a cart.
func (c *Cart) ToResponse() *CartResponse {
	totals := c.Totals()

	items := c.Items
	if items == nil {
		items = []LineItem{}
	}

	return &CartResponse{
		ID:            c.ID.String(),
		Items:         items,
		ItemCount:     c.ItemCount(),
		Coupon:        c.Coupon,
		CouponPending: c.Coupon != nil && totals.Discount.IsZero() && !totals.Subtotal.IsZero(),
		Shipping:      c.Shipping,
		Totals:        totals,
	}
}
