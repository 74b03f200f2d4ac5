package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type fiscalYearRepository struct {
	store *Store
}

var _ portsrepo.FiscalYearRepositoryFacade = (*fiscalYearRepository)(nil)

func (r *fiscalYearRepository) find(ctx context.Context, what string, match func(domain.FiscalYear) bool) (*domain.FiscalYear, error) {
	var found *domain.FiscalYear
	err := r.store.read(ctx, func(d *dataset) error {
		for _, fy := range d.fiscalYears {
			if match(fy) {
				c := fy
				found = &c
				return nil
			}
		}
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, what)
	})
	return found, err
}

func (r *fiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return r.find(ctx, fiscalYearID, func(fy domain.FiscalYear) bool { return fy.FiscalYearID == fiscalYearID })
}

func (r *fiscalYearRepository) FindFiscalYearByYear(ctx context.Context, year int) (*domain.FiscalYear, error) {
	return r.find(ctx, fmt.Sprint(year), func(fy domain.FiscalYear) bool { return fy.Year == year })
}

func (r *fiscalYearRepository) FindFiscalYearByDate(ctx context.Context, date time.Time) (*domain.FiscalYear, error) {
	return r.find(ctx, "containing "+date.Format(time.DateOnly), func(fy domain.FiscalYear) bool { return fy.Contains(date) })
}

func (r *fiscalYearRepository) FindCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	return r.find(ctx, "current", func(fy domain.FiscalYear) bool { return fy.IsCurrent })
}

func (r *fiscalYearRepository) list(ctx context.Context, keep func(domain.FiscalYear) bool) ([]domain.FiscalYear, error) {
	result := make([]domain.FiscalYear, 0)
	err := r.store.read(ctx, func(d *dataset) error {
		for _, fy := range d.fiscalYears {
			if keep(fy) {
				result = append(result, fy)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, err
}

func (r *fiscalYearRepository) FindOpenFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.list(ctx, func(fy domain.FiscalYear) bool { return !fy.IsClosed })
}

func (r *fiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.list(ctx, func(domain.FiscalYear) bool { return true })
}

func (r *fiscalYearRepository) SaveFiscalYear(ctx context.Context, fiscalYear domain.FiscalYear) error {
	return r.store.write(ctx, func(d *dataset) error {
		for _, fy := range d.fiscalYears {
			if fy.FiscalYearID == fiscalYear.FiscalYearID || fy.Year == fiscalYear.Year {
				return fmt.Errorf("%w: fiscal year %d", apperrors.ErrDuplicate, fiscalYear.Year)
			}
		}
		d.fiscalYears[fiscalYear.FiscalYearID] = fiscalYear
		return nil
	})
}

func (r *fiscalYearRepository) UpdateFiscalYear(ctx context.Context, fiscalYear *domain.FiscalYear) error {
	return r.store.write(ctx, func(d *dataset) error {
		stored, ok := d.fiscalYears[fiscalYear.FiscalYearID]
		if !ok {
			return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, fiscalYear.FiscalYearID)
		}
		if stored.Version != fiscalYear.Version {
			return fmt.Errorf("fiscal year %d: %w", fiscalYear.Year, apperrors.ErrConcurrentModification)
		}
		fiscalYear.Version++
		d.fiscalYears[fiscalYear.FiscalYearID] = *fiscalYear
		return nil
	})
}
