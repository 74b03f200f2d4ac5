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

type journalRepository struct {
	store *Store
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	var found *domain.JournalEntry
	err := r.store.read(ctx, func(d *dataset) error {
		e, ok := d.entries[entryID]
		if !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		c := e.Clone()
		found = &c
		return nil
	})
	return found, err
}

func (r *journalRepository) FindJournalEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	result := make([]domain.JournalEntry, 0)
	err := r.store.read(ctx, func(d *dataset) error {
		for _, e := range d.entries {
			date := domain.DateOnly(e.Date)
			if !date.Before(from) && !date.After(to) {
				result = append(result, e.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EntryNumber < result[j].EntryNumber
	})
	return result, err
}

func (r *journalRepository) NextEntryNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.store.write(ctx, func(d *dataset) error {
		d.entrySeq++
		next = d.entrySeq
		return nil
	})
	return next, err
}

func (r *journalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, exists := d.entries[entry.EntryID]; exists {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.EntryID)
		}
		for _, e := range d.entries {
			if e.EntryNumber == entry.EntryNumber {
				return fmt.Errorf("%w: journal entry number %d", apperrors.ErrDuplicate, entry.EntryNumber)
			}
		}
		d.entries[entry.EntryID] = entry.Clone()
		return nil
	})
}

func (r *journalRepository) UpdateJournalEntry(ctx context.Context, entry *domain.JournalEntry) error {
	return r.store.write(ctx, func(d *dataset) error {
		stored, ok := d.entries[entry.EntryID]
		if !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.EntryID)
		}
		if stored.Version != entry.Version {
			return fmt.Errorf("journal entry %s: %w", entry.EntryID, apperrors.ErrConcurrentModification)
		}
		entry.Version++
		d.entries[entry.EntryID] = entry.Clone()
		return nil
	})
}

func (r *journalRepository) DeleteJournalEntry(ctx context.Context, entryID string) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, ok := d.entries[entryID]; !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		delete(d.entries, entryID)
		return nil
	})
}
