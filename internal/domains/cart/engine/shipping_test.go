package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aguacates-backend/internal/domains/cart/model"
)

// --- Mocks ---

type mockQuoter struct {
	mu     sync.Mutex
	quote  *RemoteQuote
	err    error
	during func(q *mockQuoter)
	calls  int
}

func (m *mockQuoter) Quote(_ context.Context, _ decimal.Decimal, _ string) (*RemoteQuote, error) {
	m.mu.Lock()
	m.calls++
	during := m.during
	m.mu.Unlock()

	if during != nil {
		during(m)
	}
	return m.quote, m.err
}

type mockValidator struct {
	terms *CouponTerms
	err   error
}

func (m *mockValidator) Validate(_ context.Context, _ string, _ decimal.Decimal, _ string) (*CouponTerms, error) {
	return m.terms, m.err
}

// --- Helpers ---

func testConfig() Config {
	return Config{
		DefaultCost:     decimal.NewFromInt(7400),
		FreeShippingMin: decimal.NewFromInt(68900),
		DefaultDays:     1,
		FreeDays:        2,
	}
}

func newTestEngine(q ShippingQuoter, v CouponValidator) *Engine {
	return NewEngine(q, v, testConfig(), zerolog.Nop())
}

// remoteQuote unmarshals a JSON shipping payload the way the HTTP
// adapter would, so field types match real wire data.
func remoteQuote(t *testing.T, raw string) *RemoteQuote {
	t.Helper()
	var q RemoteQuote
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	return &q
}

func cartWithSubtotal(e *Engine, amount int64) model.Cart {
	cart := e.NewCart()
	cart.Items = []model.LineItem{{
		Product: model.ProductSnapshot{
			ID:    cart.ID,
			Name:  "Aguacate Hass",
			Price: decimal.NewFromInt(amount),
			Unit:  "kg",
		},
		Quantity: 1,
		Price:    decimal.NewFromInt(amount),
	}}
	return cart
}

// --- Default quote ---

func TestConfigDefaultQuote(t *testing.T) {
	cfg := testConfig()

	t.Run("below threshold pays shipping", func(t *testing.T) {
		q := cfg.DefaultQuote(decimal.NewFromInt(9000))
		assert.True(t, q.Cost.Equal(decimal.NewFromInt(7400)))
		assert.False(t, q.FreeShipping)
		assert.True(t, q.AmountForFreeShipping.Equal(decimal.NewFromInt(59900)))
		assert.Equal(t, 1, q.EstimatedDays)
	})

	t.Run("exactly at threshold still pays", func(t *testing.T) {
		q := cfg.DefaultQuote(decimal.NewFromInt(68900))
		assert.False(t, q.FreeShipping)
		assert.True(t, q.AmountForFreeShipping.IsZero())
	})

	t.Run("above threshold is free", func(t *testing.T) {
		q := cfg.DefaultQuote(decimal.NewFromInt(68901))
		assert.True(t, q.FreeShipping)
		assert.True(t, q.Cost.IsZero())
		assert.Equal(t, 2, q.EstimatedDays)
		assert.Equal(t, "¡Envío GRATIS en tu pedido!", q.Message)
	})
}

// --- CalculateShipping ---

func TestCalculateShippingRemoteSuccess(t *testing.T) {
	quoter := &mockQuoter{quote: remoteQuote(t, `{
		"cost": 9900,
		"freeShipping": false,
		"freeShippingMin": 80000,
		"estimatedDays": 3,
		"message": "Envío a Medellín"
	}`)}
	e := newTestEngine(quoter, &mockValidator{})
	cart := cartWithSubtotal(e, 9000)

	quote := e.CalculateShipping(context.Background(), cart, "Medellín")

	assert.True(t, quote.Cost.Equal(decimal.NewFromInt(9900)))
	assert.True(t, quote.FreeShippingMin.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, 3, quote.EstimatedDays)
	assert.Equal(t, "Envío a Medellín", quote.Message)
	assert.True(t, quote.AmountForFreeShipping.Equal(decimal.NewFromInt(71000)))
}

func TestCalculateShippingFallsBackOnError(t *testing.T) {
	quoter := &mockQuoter{err: errors.New("connection refused")}
	e := newTestEngine(quoter, &mockValidator{})
	cart := cartWithSubtotal(e, 9000)

	quote := e.CalculateShipping(context.Background(), cart, "")

	assert.True(t, quote.Cost.Equal(decimal.NewFromInt(7400)))
	assert.False(t, quote.FreeShipping)
	assert.Equal(t, 1, quote.EstimatedDays)
}

func TestCalculateShippingFieldCoercion(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, q model.ShippingQuote)
	}{
		{
			name:    "string cost rejected",
			payload: `{"cost": "9900", "estimatedDays": 3}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.True(t, q.Cost.Equal(decimal.NewFromInt(7400)))
				assert.Equal(t, 3, q.EstimatedDays)
			},
		},
		{
			name:    "negative cost rejected",
			payload: `{"cost": -500}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.True(t, q.Cost.Equal(decimal.NewFromInt(7400)))
			},
		},
		{
			name:    "non-bool freeShipping rejected",
			payload: `{"freeShipping": "yes", "cost": 9900}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.False(t, q.FreeShipping)
				assert.True(t, q.Cost.Equal(decimal.NewFromInt(9900)))
			},
		},
		{
			name:    "fractional days rejected",
			payload: `{"estimatedDays": 2.5}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.Equal(t, 1, q.EstimatedDays)
			},
		},
		{
			name:    "empty message keeps default",
			payload: `{"message": ""}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.Equal(t, "Envío: $7.400", q.Message)
			},
		},
		{
			name:    "null fields keep defaults",
			payload: `{"cost": null, "freeShipping": null, "estimatedDays": null}`,
			check: func(t *testing.T, q model.ShippingQuote) {
				assert.True(t, q.Cost.Equal(decimal.NewFromInt(7400)))
				assert.Equal(t, 1, q.EstimatedDays)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoter := &mockQuoter{quote: remoteQuote(t, tt.payload)}
			e := newTestEngine(quoter, &mockValidator{})
			cart := cartWithSubtotal(e, 9000)

			tt.check(t, e.CalculateShipping(context.Background(), cart, ""))
		})
	}
}

func TestCalculateShippingThresholdOverridesRemote(t *testing.T) {
	// Remote says not free, but the subtotal clears the remote's own
	// threshold; the local rule wins.
	quoter := &mockQuoter{quote: remoteQuote(t, `{
		"cost": 9900,
		"freeShipping": false,
		"freeShippingMin": 50000
	}`)}
	e := newTestEngine(quoter, &mockValidator{})
	cart := cartWithSubtotal(e, 60000)

	quote := e.CalculateShipping(context.Background(), cart, "")

	assert.True(t, quote.FreeShipping)
	assert.True(t, quote.Cost.IsZero())
	assert.True(t, quote.AmountForFreeShipping.IsZero())
}

func TestCalculateShippingRemoteFreeShippingZeroesCost(t *testing.T) {
	quoter := &mockQuoter{quote: remoteQuote(t, `{
		"cost": 9900,
		"freeShipping": true
	}`)}
	e := newTestEngine(quoter, &mockValidator{})
	cart := cartWithSubtotal(e, 9000)

	quote := e.CalculateShipping(context.Background(), cart, "")

	assert.True(t, quote.FreeShipping)
	assert.True(t, quote.Cost.IsZero())
}

func TestCalculateShippingStaleResponseDiscarded(t *testing.T) {
	e := newTestEngine(nil, &mockValidator{})
	cart := cartWithSubtotal(e, 9000)
	cart.Shipping = model.ShippingQuote{
		Cost:          decimal.NewFromInt(5000),
		EstimatedDays: 4,
		Message:       "previous quote",
	}

	quoter := &mockQuoter{quote: remoteQuote(t, `{"cost": 9900}`)}
	// While this request is in flight, a newer calculation starts for
	// the same cart; the in-flight result must be discarded.
	quoter.during = func(*mockQuoter) {
		e.nextSeq(cart.ID)
	}
	e.quoter = quoter

	quote := e.CalculateShipping(context.Background(), cart, "")

	assert.Equal(t, "previous quote", quote.Message)
	assert.True(t, quote.Cost.Equal(decimal.NewFromInt(5000)))
}

func TestCalculateShippingNegativeSubtotalSkipsRemote(t *testing.T) {
	quoter := &mockQuoter{quote: remoteQuote(t, `{"cost": 9900}`)}
	e := newTestEngine(quoter, &mockValidator{})

	cart := e.NewCart()
	cart.Items = []model.LineItem{{
		Product:  model.ProductSnapshot{ID: cart.ID, Name: "corrupt", Price: decimal.NewFromInt(-100)},
		Quantity: 1,
		Price:    decimal.NewFromInt(-100),
	}}

	quote := e.CalculateShipping(context.Background(), cart, "")

	assert.Equal(t, 0, quoter.calls)
	assert.True(t, quote.Cost.Equal(decimal.NewFromInt(7400)))
	assert.True(t, quote.AmountForFreeShipping.Equal(decimal.NewFromInt(68900)))
}
