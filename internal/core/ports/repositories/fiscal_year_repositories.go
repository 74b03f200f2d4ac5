package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal year data
type FiscalYearReader interface {
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	FindFiscalYearByYear(ctx context.Context, year int) (*domain.FiscalYear, error)

	// FindFiscalYearByDate retrieves the year whose range contains date.
	FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error)

	// FindCurrentFiscalYear retrieves the year flagged current, or apperrors.ErrNotFound.
	FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// FindOpenFiscalYears retrieves years that are not closed, ordered by year.
	FindOpenFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal year data
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new year. A taken year number yields apperrors.ErrDuplicate.
	SaveFiscalYear(ctx context.Context, fiscalYear domain.FiscalYear) error

	UpdateFiscalYear(ctx context.Context, fiscalYear *domain.FiscalYear) error
}

// FiscalYearRepositoryFacade combines all fiscal year repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
