package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry together with its lines.
	FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindJournalEntriesByDateRange retrieves entries dated within [from, to],
	// ordered by date then entry number.
	FindJournalEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// NextEntryNumber allocates the next entry number. Numbers are unique and
	// increasing; gaps are allowed.
	NextEntryNumber(ctx context.Context) (int64, error)

	// SaveJournalEntry persists a new entry and its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateJournalEntry replaces the header and lines of an entry if its Version
	// matches the stored one and increments entry.Version on success.
	UpdateJournalEntry(ctx context.Context, entry *domain.JournalEntry) error

	// DeleteJournalEntry removes an entry and its lines.
	DeleteJournalEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
