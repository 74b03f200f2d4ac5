package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type fiscalYearService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
	uow            portsrepo.UnitOfWork
}

// NewFiscalYearService creates a new FiscalYearService.
func NewFiscalYearService(repo portsrepo.FiscalYearRepositoryFacade, uow portsrepo.UnitOfWork, options ...ServiceOption) portssvc.FiscalYearSvcFacade {
	svc := &fiscalYearService{
		fiscalYearRepo: repo,
		uow:            uow,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	var created *domain.FiscalYear
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.create(ctx, req.Year, req.StartDate, req.EndDate, userID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create fiscal year", slog.Int("year", req.Year))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created successfully",
		slog.String("fiscal_year_id", created.FiscalYearID),
		slog.Int("year", created.Year))
	return created, nil
}

// create must run inside a unit of work.
func (s *fiscalYearService) create(ctx context.Context, year int, start, end time.Time, userID string) (*domain.FiscalYear, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidPeriod, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	if _, err := s.fiscalYearRepo.FindFiscalYearByYear(ctx, year); err == nil {
		return nil, fmt.Errorf("%w: fiscal year %d", apperrors.ErrDuplicate, year)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	existing, err := s.fiscalYearRepo.ListFiscalYears(ctx)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if !start.After(other.EndDate) && !end.Before(other.StartDate) {
			return nil, fmt.Errorf("%w: %d", domain.ErrFiscalYearOverlap, other.Year)
		}
	}

	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Year:         year,
		StartDate:    start,
		EndDate:      end,
		Version:      1,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, fy); err != nil {
		return nil, err
	}
	return &fy, nil
}

func (s *fiscalYearService) GetFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}
	return fy, nil
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	years, err := s.fiscalYearRepo.ListFiscalYears(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years")
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return years, nil
}

func (s *fiscalYearService) ListOpenFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	years, err := s.fiscalYearRepo.FindOpenFiscalYears(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open fiscal years")
		return nil, fmt.Errorf("failed to list open fiscal years: %w", err)
	}
	return years, nil
}

func (s *fiscalYearService) IsDateWithin(ctx context.Context, fiscalYearID string, date time.Time) (bool, error) {
	fy, err := s.GetFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return false, err
	}
	return fy.Contains(date), nil
}

// EnsureDatePostable rejects dates inside a closed fiscal year. Dates that no
// fiscal year covers are postable.
func (s *fiscalYearService) EnsureDatePostable(ctx context.Context, date time.Time) error {
	fy, err := s.fiscalYearRepo.FindFiscalYearByDate(ctx, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: %s falls in fiscal year %d", domain.ErrPeriodClosed, date.Format(time.DateOnly), fy.Year)
	}
	return nil
}

func (s *fiscalYearService) SetCurrentFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	var target *domain.FiscalYear
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		return s.makeCurrent(ctx, target, userID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to set current fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	s.LogInfo(ctx, "Current fiscal year changed", slog.String("fiscal_year_id", fiscalYearID), slog.Int("year", target.Year))
	return target, nil
}

// makeCurrent clears the flag on the previous holder and sets it on target.
// Must run inside a unit of work.
func (s *fiscalYearService) makeCurrent(ctx context.Context, target *domain.FiscalYear, userID string) error {
	if target.IsClosed {
		return fmt.Errorf("%w: fiscal year %d", domain.ErrFiscalYearClosed, target.Year)
	}
	if target.IsCurrent {
		return nil
	}

	now := s.Now()
	previous, err := s.fiscalYearRepo.FindCurrentFiscalYear(ctx)
	switch {
	case err == nil:
		previous.IsCurrent = false
		previous.Touch(userID, now)
		if err := s.fiscalYearRepo.UpdateFiscalYear(ctx, previous); err != nil {
			return err
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}

	target.IsCurrent = true
	target.Touch(userID, now)
	return s.fiscalYearRepo.UpdateFiscalYear(ctx, target)
}

func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	return s.transition(ctx, fiscalYearID, userID, "close", (*domain.FiscalYear).Close)
}

func (s *fiscalYearService) ReopenFiscalYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	return s.transition(ctx, fiscalYearID, userID, "reopen", (*domain.FiscalYear).Reopen)
}

func (s *fiscalYearService) transition(ctx context.Context, fiscalYearID, userID, action string, apply func(*domain.FiscalYear) error) (*domain.FiscalYear, error) {
	var fy *domain.FiscalYear
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.fiscalYearRepo.FindFiscalYearByID(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		if err := apply(fy); err != nil {
			return err
		}
		fy.Touch(userID, s.Now())
		return s.fiscalYearRepo.UpdateFiscalYear(ctx, fy)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to "+action+" fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year status changed",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("action", action),
		slog.Bool("closed", fy.IsClosed))
	return fy, nil
}

// GetOrCreateCurrent returns the current fiscal year. When none is current it
// marks the year containing today current. Without one it uses the year
// labelled with today's calendar year, creating it with calendar bounds if
// missing.
func (s *fiscalYearService) GetOrCreateCurrent(ctx context.Context, userID string) (*domain.FiscalYear, error) {
	var fy *domain.FiscalYear
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.fiscalYearRepo.FindCurrentFiscalYear(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		now := s.Now()
		fy, err = s.fiscalYearRepo.FindFiscalYearByDate(ctx, now)
		if err == nil {
			return s.makeCurrent(ctx, fy, userID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		year := now.Year()
		fy, err = s.fiscalYearRepo.FindFiscalYearByYear(ctx, year)
		if errors.Is(err, apperrors.ErrNotFound) {
			start, end := domain.CalendarYearBounds(year)
			fy, err = s.create(ctx, year, start, end, userID)
		}
		if err != nil {
			return err
		}
		return s.makeCurrent(ctx, fy, userID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve current fiscal year")
		return nil, err
	}
	return fy, nil
}
