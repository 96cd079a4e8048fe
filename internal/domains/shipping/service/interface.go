package service

import (
	"context"

	"github.com/shopspring/decimal"

	"aguacates-backend/internal/domains/shipping/model"
)

type ServiceInterface interface {
	// Calculate quotes shipping for a subtotal and destination. It always
	// returns a usable quote: rule lookup failures degrade to the default
	// tariff instead of erroring, so checkout never blocks on shipping.
	Calculate(ctx context.Context, subtotal decimal.Decimal, location string) *model.Quote
}
