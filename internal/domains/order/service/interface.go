package service

import (
	"context"

	"aguacates-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// Checkout turns the session's cart into an order. Order, items and
	// coupon redemption are written in one transaction; the WhatsApp
	// notification is enqueued afterwards and the cart is cleared.
	Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.Order, error)

	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}
