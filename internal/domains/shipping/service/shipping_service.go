package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"aguacates-backend/internal/config"
	"aguacates-backend/internal/domains/shipping/model"
	repo "aguacates-backend/internal/domains/shipping/repository"
	"aguacates-backend/internal/shared/utils"
	"aguacates-backend/pkg/logger"
)

type ShippingService struct {
	repository repo.RepositoryInterface
	cfg        config.ShippingConfig
}

func NewShippingService(r repo.RepositoryInterface, cfg config.ShippingConfig) ServiceInterface {
	return &ShippingService{
		repository: r,
		cfg:        cfg,
	}
}

// Calculate implements ServiceInterface.Calculate
func (s *ShippingService) Calculate(ctx context.Context, subtotal decimal.Decimal, location string) *model.Quote {
	if location == "" {
		location = s.cfg.DefaultZone
	}

	cost := s.cfg.DefaultCost
	freeMin := s.cfg.FreeShippingMin
	days := s.cfg.DefaultDays
	freeDays := s.cfg.FreeDays

	rules, err := s.repository.ListActiveForZone(ctx, location)
	if err != nil {
		// Rule lookup failures are not fatal: quote with the default
		// tariff so the cart stays usable.
		logger.Warn("Shipping rule lookup failed, using default tariff", map[string]interface{}{
			"location": location,
			"error":    err.Error(),
		})
	} else if len(rules) > 0 {
		rule := rules[0]
		cost = rule.Cost
		freeMin = rule.FreeShippingMin
		days = rule.EstimatedDays
		freeDays = rule.FreeDays
	}

	// Free shipping kicks in strictly above the threshold.
	free := subtotal.GreaterThan(freeMin)

	quote := &model.Quote{
		FreeShipping:    free,
		FreeShippingMin: freeMin.InexactFloat64(),
		Location:        location,
	}

	if free {
		quote.Cost = 0
		quote.AmountForFreeShipping = 0
		quote.EstimatedDays = freeDays
		quote.Message = "¡Envío GRATIS en tu pedido!"
	} else {
		quote.Cost = cost.InexactFloat64()
		quote.AmountForFreeShipping = decimal.Max(decimal.Zero, freeMin.Sub(subtotal)).InexactFloat64()
		quote.EstimatedDays = days
		quote.Message = fmt.Sprintf("Envío: %s", utils.FormatCOP(cost))
	}

	return quote
}
