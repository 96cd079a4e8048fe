package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CheckoutRequest is the body of POST /orders/checkout.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.CustomerPhone, validation.Required, validation.Length(7, 20)),
		validation.Field(&r.CustomerEmail, is.Email),
		validation.Field(&r.Address, validation.Required, validation.Length(5, 200)),
		validation.Field(&r.Location, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.PaymentMethod, validation.In("efectivo", "transferencia", "nequi", "daviplata")),
		validation.Field(&r.Notes, validation.Length(0, 500)),
	)
}
