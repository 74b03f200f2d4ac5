package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) *PgxFiscalYearRepository {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, year, start_date, end_date, is_closed, is_current, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row scanner) (domain.FiscalYear, error) {
	var f domain.FiscalYear
	err := row.Scan(
		&f.FiscalYearID,
		&f.Year,
		&f.StartDate,
		&f.EndDate,
		&f.IsClosed,
		&f.IsCurrent,
		&f.Version,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	return f, err
}

func (r *PgxFiscalYearRepository) findOne(ctx context.Context, what, where string, args ...any) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE ` + where
	f, err := scanFiscalYear(r.db(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, what)
	}
	return &f, nil
}

func (r *PgxFiscalYearRepository) list(ctx context.Context, where string, args ...any) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ` + where + ` ORDER BY year`
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "fiscal years")
	}
	years, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FiscalYear, error) {
		return scanFiscalYear(row)
	})
	if err != nil {
		return nil, mapError(err, "fiscal years")
	}
	return years, nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "fiscal year "+fiscalYearID, `fiscal_year_id = $1`, fiscalYearID)
}

func (r *PgxFiscalYearRepository) FindFiscalYearByYear(ctx context.Context, year int) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "fiscal year", `year = $1`, year)
}

func (r *PgxFiscalYearRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "fiscal year for "+date.Format(time.DateOnly),
		`$1 BETWEEN start_date AND end_date ORDER BY year LIMIT 1`, domain.DateOnly(date))
}

func (r *PgxFiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	return r.findOne(ctx, "current fiscal year", `is_current`)
}

func (r *PgxFiscalYearRepository) FindOpenFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.list(ctx, `WHERE NOT is_closed`)
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.list(ctx, ``)
}

func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fiscalYear domain.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		fiscalYear.FiscalYearID,
		fiscalYear.Year,
		fiscalYear.StartDate,
		fiscalYear.EndDate,
		fiscalYear.IsClosed,
		fiscalYear.IsCurrent,
		fiscalYear.Version,
		fiscalYear.CreatedAt,
		fiscalYear.CreatedBy,
		fiscalYear.LastUpdatedAt,
		fiscalYear.LastUpdatedBy,
	)
	return mapError(err, "fiscal year")
}

func (r *PgxFiscalYearRepository) UpdateFiscalYear(ctx context.Context, fiscalYear *domain.FiscalYear) error {
	what := "fiscal year " + fiscalYear.FiscalYearID
	query := `
		UPDATE fiscal_years
		SET start_date = $3, end_date = $4, is_closed = $5, is_current = $6,
		    last_updated_at = $7, last_updated_by = $8, version = version + 1
		WHERE fiscal_year_id = $1 AND version = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		fiscalYear.FiscalYearID,
		fiscalYear.Version,
		fiscalYear.StartDate,
		fiscalYear.EndDate,
		fiscalYear.IsClosed,
		fiscalYear.IsCurrent,
		fiscalYear.LastUpdatedAt,
		fiscalYear.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, what)
	}
	if err := r.checkVersioned(ctx, tag, `SELECT EXISTS (SELECT 1 FROM fiscal_years WHERE fiscal_year_id = $1)`, fiscalYear.FiscalYearID, what); err != nil {
		return err
	}
	fiscalYear.Version++
	return nil
}
