package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryLine is one row within a journal entry.
// At most one of Debit and Credit is non-zero; neither may be negative.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// Validate checks the amounts of a single line.
func (l JournalEntryLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return ErrAmbiguousLine
	}
	if !FitsScale(l.Debit, AmountScale) || !FitsScale(l.Credit, AmountScale) {
		return ErrAmountTooPrecise
	}
	return nil
}

// Swapped returns the line with debit and credit exchanged.
func (l JournalEntryLine) Swapped() JournalEntryLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// JournalEntry is a transaction header with its ordered lines.
type JournalEntry struct {
	EntryID           string             `json:"entryID"`
	EntryNumber       int64              `json:"entryNumber"`
	Date              time.Time          `json:"date"`
	Description       string             `json:"description"`
	Reference         *string            `json:"reference,omitempty"`
	Lines             []JournalEntryLine `json:"lines"`
	Posted            bool               `json:"posted"`
	ReversesEntryID   *string            `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string            `json:"reversedByEntryID,omitempty"`
	Version           int64              `json:"version"`
	AuditFields
}

// TotalDebit is the sum of all line debits.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit is the sum of all line credits.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced compares the two totals exactly.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// AddLine appends a line to a draft entry.
func (e *JournalEntry) AddLine(line JournalEntryLine) error {
	if e.Posted {
		return ErrEntryPosted
	}
	if err := line.Validate(); err != nil {
		return err
	}
	e.Lines = append(e.Lines, line)
	return nil
}

// RemoveLine drops the line at index from a draft entry.
func (e *JournalEntry) RemoveLine(index int) error {
	if e.Posted {
		return ErrEntryPosted
	}
	if index < 0 || index >= len(e.Lines) {
		return ErrLineIndexOutOfRange
	}
	e.Lines = append(e.Lines[:index], e.Lines[index+1:]...)
	return nil
}

// CanPost reports the first rule that prevents the entry from being posted.
func (e *JournalEntry) CanPost() error {
	if e.Posted {
		return ErrEntryPosted
	}
	if len(e.Lines) == 0 {
		return ErrEntryNoLines
	}
	for _, l := range e.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	if !e.IsBalanced() {
		return ErrEntryUnbalanced
	}
	return nil
}

// CanReverse reports whether a compensating entry may be generated for e.
func (e *JournalEntry) CanReverse() error {
	if !e.Posted {
		return ErrEntryNotPosted
	}
	if e.ReversedByEntryID != nil {
		return ErrEntryAlreadyReversed
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	c.Lines = append([]JournalEntryLine(nil), e.Lines...)
	c.Reference = cloneString(e.Reference)
	c.ReversesEntryID = cloneString(e.ReversesEntryID)
	c.ReversedByEntryID = cloneString(e.ReversedByEntryID)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
