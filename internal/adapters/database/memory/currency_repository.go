package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type currencyRepository struct {
	store *Store
}

var _ portsrepo.CurrencyRepositoryFacade = (*currencyRepository)(nil)

func (r *currencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	var found *domain.Currency
	err := r.store.read(ctx, func(d *dataset) error {
		c, ok := d.currencies[currencyCode]
		if !ok {
			return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyCode)
		}
		found = &c
		return nil
	})
	return found, err
}

func (r *currencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	var found *domain.Currency
	err := r.store.read(ctx, func(d *dataset) error {
		for _, c := range d.currencies {
			if c.IsBaseCurrency {
				cur := c
				found = &cur
				return nil
			}
		}
		return fmt.Errorf("%w: base currency", apperrors.ErrNotFound)
	})
	return found, err
}

func (r *currencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	result := make([]domain.Currency, 0)
	err := r.store.read(ctx, func(d *dataset) error {
		for _, c := range d.currencies {
			result = append(result, c)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].CurrencyCode < result[j].CurrencyCode })
	return result, err
}

func (r *currencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, exists := d.currencies[currency.CurrencyCode]; exists {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.CurrencyCode)
		}
		d.currencies[currency.CurrencyCode] = currency
		return nil
	})
}

func (r *currencyRepository) UpdateCurrency(ctx context.Context, currency *domain.Currency) error {
	return r.store.write(ctx, func(d *dataset) error {
		stored, ok := d.currencies[currency.CurrencyCode]
		if !ok {
			return fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currency.CurrencyCode)
		}
		if stored.Version != currency.Version {
			return fmt.Errorf("currency %s: %w", currency.CurrencyCode, apperrors.ErrConcurrentModification)
		}
		currency.Version++
		d.currencies[currency.CurrencyCode] = *currency
		return nil
	})
}
