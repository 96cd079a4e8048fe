package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"aguacates-backend/internal/domains/order/model"
	"aguacates-backend/internal/shared/utils"
)

// Builder renders order confirmations as wa.me deep links. The store
// fulfills orders over WhatsApp, so the "notification" is a prefilled
// conversation with the customer's order summary.
type Builder struct {
	phone     string
	storeName string
}

func NewBuilder(phone, storeName string) *Builder {
	return &Builder{
		phone:     strings.TrimPrefix(phone, "+"),
		storeName: storeName,
	}
}

// OrderLink builds the deep link that opens WhatsApp with the order
// summary prefilled.
func (b *Builder) OrderLink(order *model.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.phone, url.QueryEscape(b.OrderMessage(order)))
}

// OrderMessage renders the Spanish order summary sent to the store.
func (b *Builder) OrderMessage(order *model.Order) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "¡Hola %s! 🥑\n\n", b.storeName)
	fmt.Fprintf(&sb, "Nuevo pedido *%s*\n\n", order.OrderNumber)

	fmt.Fprintf(&sb, "*Cliente:* %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "*Teléfono:* %s\n", order.CustomerPhone)
	fmt.Fprintf(&sb, "*Dirección:* %s, %s\n\n", order.Address, order.Location)

	sb.WriteString("*Productos:*\n")
	for _, item := range order.Items {
		label := item.ProductName
		if item.VariantLabel != nil && *item.VariantLabel != "" {
			label = fmt.Sprintf("%s (%s)", label, *item.VariantLabel)
		}
		fmt.Fprintf(&sb, "• %dx %s - %s\n", item.Quantity, label, utils.FormatCOP(item.Subtotal))
	}

	fmt.Fprintf(&sb, "\n*Subtotal:* %s\n", utils.FormatCOP(order.Subtotal))
	if order.Discount.IsPositive() {
		code := ""
		if order.CouponCode != nil {
			code = fmt.Sprintf(" (%s)", *order.CouponCode)
		}
		fmt.Fprintf(&sb, "*Descuento%s:* -%s\n", code, utils.FormatCOP(order.Discount))
	}
	if order.Shipping.IsZero() {
		sb.WriteString("*Envío:* GRATIS\n")
	} else {
		fmt.Fprintf(&sb, "*Envío:* %s\n", utils.FormatCOP(order.Shipping))
	}
	fmt.Fprintf(&sb, "*Total:* %s\n", utils.FormatCOP(order.Total))

	if order.PaymentMethod != nil && *order.PaymentMethod != "" {
		fmt.Fprintf(&sb, "\n*Pago:* %s\n", *order.PaymentMethod)
	}
	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&sb, "\n*Notas:* %s\n", *order.Notes)
	}

	return sb.String()
}
