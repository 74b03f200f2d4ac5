package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveCurrencyRequest creates a currency or updates an existing one.
// The base flag is not settable here; use the set-base operation.
type SaveCurrencyRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string          `json:"symbol" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchangeRate" binding:"decimalgte0"`
	IsActive     *bool           `json:"isActive"` // defaults to true
}

// ConvertParams is the query of a conversion request.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,len=3"`
	To     string `form:"to" binding:"required,len=3"`
}

// ConvertResponse carries a converted amount.
type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode   string          `json:"currencyCode"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	IsBaseCurrency bool            `json:"isBaseCurrency"`
	IsActive       bool            `json:"isActive"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:   curr.CurrencyCode,
		Symbol:         curr.Symbol,
		Name:           curr.Name,
		ExchangeRate:   curr.ExchangeRate,
		IsBaseCurrency: curr.IsBaseCurrency,
		IsActive:       curr.IsActive,
		Version:        curr.Version,
		CreatedAt:      curr.CreatedAt,
		CreatedBy:      curr.CreatedBy,
		LastUpdatedAt:  curr.LastUpdatedAt,
		LastUpdatedBy:  curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr) // Reuse the single converter
	}
	return res
}
