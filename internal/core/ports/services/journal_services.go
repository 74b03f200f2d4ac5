package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves an entry with its lines.
	GetJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntriesByDateRange retrieves entries dated within [from, to].
	ListJournalEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry creates a draft entry with the next entry number.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// AddLine appends a line to a draft entry.
	AddLine(ctx context.Context, entryID string, req dto.JournalLineRequest, userID string) (*domain.JournalEntry, error)

	// RemoveLine drops the line at index from a draft entry.
	RemoveLine(ctx context.Context, entryID string, index int, userID string) (*domain.JournalEntry, error)

	// PostJournalEntry applies every line to the ledger and marks the entry posted, atomically.
	PostJournalEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseJournalEntry creates and posts a compensating entry for a posted one.
	ReverseJournalEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a draft entry.
	DeleteJournalEntry(ctx context.Context, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
