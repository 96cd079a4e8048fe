package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Rule is a zone-scoped shipping tariff. Lower priority wins when several
// rules cover the same zone.
type Rule struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Zones           pq.StringArray  `json:"zones" db:"zones"`
	Cost            decimal.Decimal `json:"cost" db:"cost"`
	FreeShippingMin decimal.Decimal `json:"free_shipping_min" db:"free_shipping_min"`
	EstimatedDays   int             `json:"estimated_days" db:"estimated_days"`
	FreeDays        int             `json:"free_days" db:"free_days"`
	Priority        int             `json:"priority" db:"priority"`
	IsActive        bool            `json:"is_active" db:"is_active"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Covers reports whether the rule applies to a location.
func (r *Rule) Covers(location string) bool {
	for _, zone := range r.Zones {
		if zone == location {
			return true
		}
	}
	return false
}

// Quote is the computed shipping breakdown for one request. Wire types are
// plain numbers: the storefront contract predates this service and the
// cart engine only trusts JSON numbers.
type Quote struct {
	Cost                  float64 `json:"cost"`
	FreeShipping          bool    `json:"freeShipping"`
	FreeShippingMin       float64 `json:"freeShippingMin"`
	AmountForFreeShipping float64 `json:"amountForFreeShipping"`
	Location              string  `json:"location"`
	EstimatedDays         int     `json:"estimatedDays"`
	Message               string  `json:"message"`
}
