package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CurrencyReader looks currencies up by ISO code.
type CurrencyReader interface {
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the base currency, or apperrors.ErrNotFound when none is set.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies returns every currency, active or not, ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter persists currencies. Exchange rates are stored against the base currency.
type CurrencyWriter interface {
	// SaveCurrency inserts a new currency. A taken code yields apperrors.ErrDuplicate.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency writes currency with the usual version check.
	UpdateCurrency(ctx context.Context, currency *domain.Currency) error
}

// CurrencyRepositoryFacade combines the currency reader and writer.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
