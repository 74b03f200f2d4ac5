package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, symbol, name, exchange_rate, is_base_currency, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row scanner) (domain.Currency, error) {
	var c domain.Currency
	err := row.Scan(
		&c.CurrencyCode,
		&c.Symbol,
		&c.Name,
		&c.ExchangeRate,
		&c.IsBaseCurrency,
		&c.IsActive,
		&c.Version,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindCurrencyByCode retrieves a currency by its ISO code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1`
	c, err := scanCurrency(r.db(ctx).QueryRow(ctx, query, currencyCode))
	if err != nil {
		return nil, mapError(err, "currency "+currencyCode)
	}
	return &c, nil
}

func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base_currency`
	c, err := scanCurrency(r.db(ctx).QueryRow(ctx, query))
	if err != nil {
		return nil, mapError(err, "base currency")
	}
	return &c, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "currencies")
	}
	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, mapError(err, "currencies")
	}
	return currencies, nil
}

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		currency.CurrencyCode,
		currency.Symbol,
		currency.Name,
		currency.ExchangeRate,
		currency.IsBaseCurrency,
		currency.IsActive,
		currency.Version,
		currency.CreatedAt,
		currency.CreatedBy,
		currency.LastUpdatedAt,
		currency.LastUpdatedBy,
	)
	return mapError(err, "currency "+currency.CurrencyCode)
}

func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency *domain.Currency) error {
	what := "currency " + currency.CurrencyCode
	query := `
		UPDATE currencies
		SET symbol = $3, name = $4, exchange_rate = $5, is_base_currency = $6, is_active = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE currency_code = $1 AND version = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		currency.CurrencyCode,
		currency.Version,
		currency.Symbol,
		currency.Name,
		currency.ExchangeRate,
		currency.IsBaseCurrency,
		currency.IsActive,
		currency.LastUpdatedAt,
		currency.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, what)
	}
	if err := r.checkVersioned(ctx, tag, `SELECT EXISTS (SELECT 1 FROM currencies WHERE currency_code = $1)`, currency.CurrencyCode, what); err != nil {
		return err
	}
	currency.Version++
	return nil
}
