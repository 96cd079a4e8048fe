package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Order is a placed order. Prices are frozen copies of the cart totals at
// checkout time; later catalog or coupon changes never touch them.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrderNumber string    `json:"order_number" db:"order_number"`
	SessionID   string    `json:"-" db:"session_id"`

	CustomerName  string  `json:"customer_name" db:"customer_name"`
	CustomerPhone string  `json:"customer_phone" db:"customer_phone"`
	CustomerEmail *string `json:"customer_email,omitempty" db:"customer_email"`
	Address       string  `json:"address" db:"address"`
	Location      string  `json:"location" db:"location"`
	PaymentMethod *string `json:"payment_method,omitempty" db:"payment_method"`
	Notes         *string `json:"notes,omitempty" db:"notes"`

	Items []OrderItem `json:"items"`

	Subtotal   decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount   decimal.Decimal `json:"discount" db:"discount"`
	Shipping   decimal.Decimal `json:"shipping" db:"shipping"`
	Total      decimal.Decimal `json:"total" db:"total"`
	CouponCode *string         `json:"coupon_code,omitempty" db:"coupon_code"`

	Status       Status    `json:"status" db:"status"`
	WhatsAppLink *string   `json:"whatsapp_link,omitempty" db:"whatsapp_link"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem is one frozen cart line inside an order.
type OrderItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderID      uuid.UUID       `json:"-" db:"order_id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	VariantID    *uuid.UUID      `json:"variant_id,omitempty" db:"variant_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	VariantLabel *string         `json:"variant_label,omitempty" db:"variant_label"`
	Unit         string          `json:"unit" db:"unit"`
	Quantity     int             `json:"quantity" db:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
}
