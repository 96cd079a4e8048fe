package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"aguacates-backend/internal/config"
	"aguacates-backend/internal/domains/shipping/model"
)

type mockRuleRepo struct {
	rules []*model.Rule
	err   error
}

func (m *mockRuleRepo) ListActiveForZone(_ context.Context, _ string) ([]*model.Rule, error) {
	return m.rules, m.err
}

func testShippingConfig() config.ShippingConfig {
	return config.ShippingConfig{
		DefaultCost:     decimal.NewFromInt(7400),
		FreeShippingMin: decimal.NewFromInt(68900),
		DefaultDays:     1,
		FreeDays:        2,
		DefaultZone:     "Bogotá",
	}
}

func TestShippingCalculateDefaults(t *testing.T) {
	svc := NewShippingService(&mockRuleRepo{}, testShippingConfig())

	t.Run("below threshold", func(t *testing.T) {
		q := svc.Calculate(context.Background(), decimal.NewFromInt(9000), "")

		assert.Equal(t, float64(7400), q.Cost)
		assert.False(t, q.FreeShipping)
		assert.Equal(t, float64(59900), q.AmountForFreeShipping)
		assert.Equal(t, 1, q.EstimatedDays)
		assert.Equal(t, "Bogotá", q.Location)
		assert.Equal(t, "Envío: $7.400", q.Message)
	})

	t.Run("exactly at threshold still pays", func(t *testing.T) {
		q := svc.Calculate(context.Background(), decimal.NewFromInt(68900), "")

		assert.False(t, q.FreeShipping)
		assert.Equal(t, float64(0), q.AmountForFreeShipping)
	})

	t.Run("above threshold is free", func(t *testing.T) {
		q := svc.Calculate(context.Background(), decimal.NewFromInt(70000), "")

		assert.True(t, q.FreeShipping)
		assert.Equal(t, float64(0), q.Cost)
		assert.Equal(t, 2, q.EstimatedDays)
		assert.Equal(t, "¡Envío GRATIS en tu pedido!", q.Message)
	})
}

func TestShippingCalculateZoneRule(t *testing.T) {
	repo := &mockRuleRepo{rules: []*model.Rule{{
		Cost:            decimal.NewFromInt(12000),
		FreeShippingMin: decimal.NewFromInt(100000),
		EstimatedDays:   3,
		FreeDays:        4,
	}}}
	svc := NewShippingService(repo, testShippingConfig())

	q := svc.Calculate(context.Background(), decimal.NewFromInt(70000), "Medellín")

	assert.Equal(t, float64(12000), q.Cost)
	assert.False(t, q.FreeShipping, "rule raises the threshold past the subtotal")
	assert.Equal(t, float64(30000), q.AmountForFreeShipping)
	assert.Equal(t, 3, q.EstimatedDays)
	assert.Equal(t, "Medellín", q.Location)
}

func TestShippingCalculateRepoErrorFallsBack(t *testing.T) {
	repo := &mockRuleRepo{err: errors.New("connection reset")}
	svc := NewShippingService(repo, testShippingConfig())

	q := svc.Calculate(context.Background(), decimal.NewFromInt(9000), "Cali")

	assert.Equal(t, float64(7400), q.Cost)
	assert.Equal(t, "Cali", q.Location)
}
