package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aguacates-backend/internal/domains/order/model"
)

func testOrder() *model.Order {
	variant := "Malla x5"
	notes := "Dejar en portería"
	code := "HASS10"

	return &model.Order{
		ID:            uuid.New(),
		OrderNumber:   "TA-20260315-0007",
		CustomerName:  "Ana Pérez",
		CustomerPhone: "3001112233",
		Address:       "Calle 10 # 4-21",
		Location:      "Bogotá",
		Notes:         &notes,
		Items: []model.OrderItem{
			{
				ProductName: "Aguacate Hass",
				Unit:        "kg",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(9000),
				Subtotal:    decimal.NewFromInt(18000),
			},
			{
				ProductName:  "Aguacate Hass",
				VariantLabel: &variant,
				Unit:         "malla",
				Quantity:     1,
				UnitPrice:    decimal.NewFromInt(32000),
				Subtotal:     decimal.NewFromInt(32000),
			},
		},
		Subtotal:   decimal.NewFromInt(50000),
		Discount:   decimal.NewFromInt(5000),
		Shipping:   decimal.NewFromInt(7400),
		Total:      decimal.NewFromInt(52400),
		CouponCode: &code,
	}
}

func TestOrderMessage(t *testing.T) {
	b := NewBuilder("+573001234567", "Tus Aguacates")
	msg := b.OrderMessage(testOrder())

	assert.Contains(t, msg, "Nuevo pedido *TA-20260315-0007*")
	assert.Contains(t, msg, "*Cliente:* Ana Pérez")
	assert.Contains(t, msg, "*Dirección:* Calle 10 # 4-21, Bogotá")
	assert.Contains(t, msg, "2x Aguacate Hass - $18.000")
	assert.Contains(t, msg, "1x Aguacate Hass (Malla x5) - $32.000")
	assert.Contains(t, msg, "*Subtotal:* $50.000")
	assert.Contains(t, msg, "*Descuento (HASS10):* -$5.000")
	assert.Contains(t, msg, "*Envío:* $7.400")
	assert.Contains(t, msg, "*Total:* $52.400")
	assert.Contains(t, msg, "*Notas:* Dejar en portería")
}

func TestOrderMessageFreeShipping(t *testing.T) {
	b := NewBuilder("573001234567", "Tus Aguacates")
	order := testOrder()
	order.Shipping = decimal.Zero
	order.Discount = decimal.Zero
	order.CouponCode = nil

	msg := b.OrderMessage(order)

	assert.Contains(t, msg, "*Envío:* GRATIS")
	assert.NotContains(t, msg, "*Descuento")
}

func TestOrderLink(t *testing.T) {
	b := NewBuilder("+573001234567", "Tus Aguacates")
	link := b.OrderLink(testOrder())

	require.True(t, strings.HasPrefix(link, "https://wa.me/573001234567?text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "TA-20260315-0007")
	assert.Contains(t, text, "Ana Pérez")
}
