package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal year data
type FiscalYearReaderSvc interface {
	GetFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ListOpenFiscalYears retrieves years that are not closed.
	ListOpenFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// IsDateWithin reports whether date lies inside the year, bounds inclusive.
	IsDateWithin(ctx context.Context, fiscalYearID string, date time.Time) (bool, error)

	// EnsureDatePostable fails with domain.ErrPeriodClosed if date lies in a closed year.
	EnsureDatePostable(ctx context.Context, date time.Time) error
}

// FiscalYearWriterSvc defines fiscal period transitions
type FiscalYearWriterSvc interface {
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	// SetCurrentFiscalYear moves the current flag to fiscalYearID.
	SetCurrentFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)

	CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
	ReopenFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)

	// GetOrCreateCurrent returns the current year, creating the calendar year of now if none is current.
	GetOrCreateCurrent(ctx context.Context, userID string) (*domain.FiscalYear, error)
}

// FiscalYearSvcFacade combines all fiscal year service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
