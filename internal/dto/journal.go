package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line to add to a draft entry.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"decimalgte0"`
	Credit    decimal.Decimal `json:"credit" binding:"decimalgte0"`
	Memo      string          `json:"memo"`
}

// CreateJournalEntryRequest creates a draft entry, optionally with its first lines.
type CreateJournalEntryRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Reference   *string              `json:"reference"`
	Lines       []JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ReverseJournalEntryRequest carries the header of the compensating entry.
// Both fields are optional; the entry is dated today and described after the original.
type ReverseJournalEntryRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// ListJournalEntriesParams defines the inclusive date range filter.
type ListJournalEntriesParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryNumber       int64                 `json:"entryNumber"`
	Date              time.Time             `json:"date"`
	Description       string                `json:"description"`
	Reference         *string               `json:"reference,omitempty"`
	Posted            bool                  `json:"posted"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	ReversesEntryID   *string               `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	Lines             []JournalLineResponse `json:"lines"`
	Version           int64                 `json:"version"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
	}
	return JournalEntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		Date:              e.Date,
		Description:       e.Description,
		Reference:         e.Reference,
		Posted:            e.Posted,
		TotalDebit:        e.TotalDebit(),
		TotalCredit:       e.TotalCredit(),
		ReversesEntryID:   e.ReversesEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		Lines:             lines,
		Version:           e.Version,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToJournalEntryResponse(&e)
	}
	return res
}

// ListJournalEntriesResponse wraps the list of entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}
