package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a storefront catalog entry. Prices are COP whole pesos.
type Product struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Slug          string           `json:"slug" db:"slug"`
	Description   *string          `json:"description,omitempty" db:"description"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" db:"discount_price"`
	Stock         int              `json:"stock" db:"stock"`
	Unit          string           `json:"unit" db:"unit"` // e.g. "kg", "unidad", "malla"
	ImageURL      *string          `json:"image_url,omitempty" db:"image_url"`
	Category      *string          `json:"category,omitempty" db:"category"`
	IsActive      bool             `json:"is_active" db:"is_active"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// ProductVariant is a sellable variation of a product with its own price
// and stock, e.g. variant_name="Tamaño", variant_value="Malla x5".
type ProductVariant struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	VariantName  string          `json:"variant_name" db:"variant_name"`
	VariantValue string          `json:"variant_value" db:"variant_value"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Stock        int             `json:"stock" db:"stock"`
	IsActive     bool            `json:"is_active" db:"is_active"`
}

// EffectivePrice is the unit price a new cart line would freeze for this
// product when no variant is chosen: the discount price when present and
// lower than the list price, otherwise the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price) {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasStock reports whether qty units can still be sold.
func (p *Product) HasStock(qty int) bool {
	return p.IsActive && p.Stock >= qty
}

func (v *ProductVariant) HasStock(qty int) bool {
	return v.IsActive && v.Stock >= qty
}
