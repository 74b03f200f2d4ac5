package domain

import (
	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
// ExchangeRate is the number of base units one unit of this currency is worth.
type Currency struct {
	CurrencyCode   string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol         string          `json:"symbol"`       // e.g., "$"
	Name           string          `json:"name"`         // e.g., "US Dollar"
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	IsBaseCurrency bool            `json:"isBaseCurrency"`
	IsActive       bool            `json:"isActive"`
	Version        int64           `json:"version"`
	AuditFields
}

// PromoteToBase makes c the base currency. The base rate is always exactly 1.
func (c *Currency) PromoteToBase() {
	c.IsBaseCurrency = true
	c.ExchangeRate = decimal.NewFromInt(1)
}

// DemoteFromBase clears the base flag and resets the rate to 1.
func (c *Currency) DemoteFromBase() {
	c.IsBaseCurrency = false
	c.ExchangeRate = decimal.NewFromInt(1)
}
