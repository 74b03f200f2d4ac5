package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestJournalEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalEntryLine
		wantErr error
	}{
		{name: "debit only", line: domain.JournalEntryLine{Debit: dec("10")}},
		{name: "credit only", line: domain.JournalEntryLine{Credit: dec("10")}},
		{name: "both zero", line: domain.JournalEntryLine{}},
		{name: "negative debit", line: domain.JournalEntryLine{Debit: dec("-1")}, wantErr: domain.ErrNegativeAmount},
		{name: "negative credit", line: domain.JournalEntryLine{Credit: dec("-0.01")}, wantErr: domain.ErrNegativeAmount},
		{name: "debit and credit", line: domain.JournalEntryLine{Debit: dec("1"), Credit: dec("1")}, wantErr: domain.ErrAmbiguousLine},
		{name: "four places", line: domain.JournalEntryLine{Debit: dec("0.0001")}},
		{name: "trailing zero past four places", line: domain.JournalEntryLine{Credit: dec("1.23450")}},
		{name: "debit past four places", line: domain.JournalEntryLine{Debit: dec("0.00005")}, wantErr: domain.ErrAmountTooPrecise},
		{name: "credit past four places", line: domain.JournalEntryLine{Credit: dec("10.00001")}, wantErr: domain.ErrAmountTooPrecise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{}
	require.NoError(t, entry.AddLine(domain.JournalEntryLine{AccountID: "cash", Debit: dec("100.00")}))
	require.NoError(t, entry.AddLine(domain.JournalEntryLine{AccountID: "sales", Credit: dec("60.00")}))

	assert.Equal(t, "100", entry.TotalDebit().String())
	assert.Equal(t, "60", entry.TotalCredit().String())
	assert.False(t, entry.IsBalanced())
	assert.ErrorIs(t, entry.CanPost(), domain.ErrEntryUnbalanced)

	require.NoError(t, entry.AddLine(domain.JournalEntryLine{AccountID: "tax", Credit: dec("40")}))
	assert.True(t, entry.IsBalanced())
	assert.NoError(t, entry.CanPost())
}

func TestJournalEntry_CanPost(t *testing.T) {
	empty := domain.JournalEntry{}
	assert.ErrorIs(t, empty.CanPost(), domain.ErrEntryNoLines)
	assert.ErrorIs(t, empty.CanPost(), apperrors.ErrConsistency)

	posted := domain.JournalEntry{Posted: true}
	assert.ErrorIs(t, posted.CanPost(), domain.ErrEntryPosted)
	assert.ErrorIs(t, posted.CanPost(), apperrors.ErrConflict)

	// Balanced only before storage rounding; lines loaded without AddLine are rechecked.
	tooFine := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		{AccountID: "a", Debit: dec("0.00005")},
		{AccountID: "b", Debit: dec("0.00005")},
		{AccountID: "c", Credit: dec("0.0001")},
	}}
	assert.True(t, tooFine.IsBalanced())
	assert.ErrorIs(t, tooFine.CanPost(), domain.ErrAmountTooPrecise)
	assert.ErrorIs(t, tooFine.CanPost(), apperrors.ErrValidation)
}

func TestJournalEntry_PostedIsImmutable(t *testing.T) {
	entry := domain.JournalEntry{
		Posted: true,
		Lines:  []domain.JournalEntryLine{{AccountID: "cash", Debit: dec("1")}},
	}

	assert.ErrorIs(t, entry.AddLine(domain.JournalEntryLine{AccountID: "cash", Credit: dec("1")}), domain.ErrEntryPosted)
	assert.ErrorIs(t, entry.RemoveLine(0), domain.ErrEntryPosted)
	assert.Len(t, entry.Lines, 1)
}

func TestJournalEntry_RemoveLine(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		{AccountID: "a"}, {AccountID: "b"}, {AccountID: "c"},
	}}

	require.NoError(t, entry.RemoveLine(1))
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "a", entry.Lines[0].AccountID)
	assert.Equal(t, "c", entry.Lines[1].AccountID)
	assert.ErrorIs(t, entry.RemoveLine(2), domain.ErrLineIndexOutOfRange)
	assert.ErrorIs(t, entry.RemoveLine(-1), domain.ErrLineIndexOutOfRange)
}

func TestJournalEntry_CanReverse(t *testing.T) {
	draft := domain.JournalEntry{}
	assert.ErrorIs(t, draft.CanReverse(), domain.ErrEntryNotPosted)

	reversedBy := "rev-1"
	reversed := domain.JournalEntry{Posted: true, ReversedByEntryID: &reversedBy}
	assert.ErrorIs(t, reversed.CanReverse(), domain.ErrEntryAlreadyReversed)

	posted := domain.JournalEntry{Posted: true}
	assert.NoError(t, posted.CanReverse())
}

func TestJournalEntryLine_Swapped(t *testing.T) {
	line := domain.JournalEntryLine{AccountID: "cash", Debit: dec("100.00"), Memo: "sale"}
	swapped := line.Swapped()

	assert.True(t, swapped.Debit.IsZero())
	assert.True(t, swapped.Credit.Equal(dec("100")))
	assert.Equal(t, "cash", swapped.AccountID)
	assert.Equal(t, "sale", swapped.Memo)
}

func TestJournalEntry_CloneIsDeep(t *testing.T) {
	ref := "REF-1"
	entry := domain.JournalEntry{
		Reference: &ref,
		Lines:     []domain.JournalEntryLine{{AccountID: "cash", Debit: dec("1")}},
	}

	clone := entry.Clone()
	clone.Lines[0].AccountID = "other"
	*clone.Reference = "changed"

	assert.Equal(t, "cash", entry.Lines[0].AccountID)
	assert.Equal(t, "REF-1", *entry.Reference)
}
