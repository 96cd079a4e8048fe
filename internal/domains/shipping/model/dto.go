package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxSubtotal mirrors the storefront's upper bound on order subtotals.
const maxSubtotal = 999_999_999

// CalculateRequest is the body of POST /shipping/calculate.
type CalculateRequest struct {
	Subtotal *float64 `json:"subtotal"`
	Location string   `json:"location"`
}

func (r CalculateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subtotal,
			validation.NotNil.Error("subtotal es requerido"),
			validation.By(validateSubtotal),
		),
		validation.Field(&r.Location, validation.Length(0, 100)),
	)
}

func validateSubtotal(value interface{}) error {
	sub, _ := value.(*float64)
	if sub == nil {
		return nil // NotNil already rejects this
	}
	if *sub < 0 {
		return validation.NewError("subtotal_negative", "subtotal no puede ser negativo")
	}
	if *sub > maxSubtotal {
		return validation.NewError("subtotal_too_large", "subtotal excede el máximo permitido")
	}
	return nil
}

// CalculateResponse mirrors the legacy storefront payload shape.
type CalculateResponse struct {
	Success  bool   `json:"success"`
	Shipping *Quote `json:"shipping,omitempty"`
	Error    string `json:"error,omitempty"`
}
