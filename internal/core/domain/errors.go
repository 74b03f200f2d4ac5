package domain

import "github.com/SscSPs/ledger_engine/internal/apperrors"

// Named ledger conditions. Each one matches its kind under errors.Is.
var (
	ErrAccountHasChildren = apperrors.Kind(apperrors.ErrConflict, "account has child accounts")
	ErrAccountHasBalance  = apperrors.Kind(apperrors.ErrConflict, "account has a non-zero balance")
	ErrAccountInactive    = apperrors.Kind(apperrors.ErrValidation, "account is inactive")
	ErrInvalidAccountType = apperrors.Kind(apperrors.ErrValidation, "invalid account type")
	ErrInvalidAccountCode = apperrors.Kind(apperrors.ErrValidation, "invalid account code")
	ErrAccountNameMissing = apperrors.Kind(apperrors.ErrValidation, "account name is required")
)

var (
	ErrNegativeAmount       = apperrors.Kind(apperrors.ErrValidation, "amount must not be negative")
	ErrAmbiguousLine        = apperrors.Kind(apperrors.ErrValidation, "line cannot carry both a debit and a credit")
	ErrAmountTooPrecise     = apperrors.Kind(apperrors.ErrValidation, "amount has more than 4 decimal places")
	ErrDescriptionMissing   = apperrors.Kind(apperrors.ErrValidation, "description is required")
	ErrDateMissing          = apperrors.Kind(apperrors.ErrValidation, "date is required")
	ErrInvalidDateRange     = apperrors.Kind(apperrors.ErrValidation, "range start is after range end")
	ErrLineIndexOutOfRange  = apperrors.Kind(apperrors.ErrValidation, "journal entry line does not exist")
	ErrEntryPosted          = apperrors.Kind(apperrors.ErrConflict, "journal entry is already posted")
	ErrEntryNotPosted       = apperrors.Kind(apperrors.ErrConflict, "journal entry is not posted")
	ErrEntryAlreadyReversed = apperrors.Kind(apperrors.ErrConflict, "journal entry is already reversed")
	ErrEntryNoLines         = apperrors.Kind(apperrors.ErrConsistency, "journal entry has no lines")
	ErrEntryUnbalanced      = apperrors.Kind(apperrors.ErrConsistency, "journal entry debits and credits do not balance")
)

var (
	ErrPeriodClosed        = apperrors.Kind(apperrors.ErrConflict, "fiscal period is closed")
	ErrFiscalYearClosed    = apperrors.Kind(apperrors.ErrConflict, "fiscal year is already closed")
	ErrFiscalYearNotClosed = apperrors.Kind(apperrors.ErrConflict, "fiscal year is not closed")
	ErrFiscalYearOverlap   = apperrors.Kind(apperrors.ErrConflict, "fiscal year overlaps an existing year")
	ErrInvalidPeriod       = apperrors.Kind(apperrors.ErrValidation, "fiscal year end date precedes start date")
)

var (
	ErrInvoiceNotDraft       = apperrors.Kind(apperrors.ErrConflict, "invoice is not a draft")
	ErrInvoiceNotPosted      = apperrors.Kind(apperrors.ErrConflict, "invoice is not posted")
	ErrInvoiceCancelled      = apperrors.Kind(apperrors.ErrConflict, "invoice is already cancelled")
	ErrInvoicePaid           = apperrors.Kind(apperrors.ErrConflict, "invoice is already paid")
	ErrInvoiceNoLines        = apperrors.Kind(apperrors.ErrValidation, "invoice has no lines")
	ErrInvoiceZeroTotal      = apperrors.Kind(apperrors.ErrValidation, "invoice total must be positive")
	ErrInvoiceParty          = apperrors.Kind(apperrors.ErrValidation, "invoice needs exactly one of customer or supplier matching its type")
	ErrInvalidInvoiceType    = apperrors.Kind(apperrors.ErrValidation, "invalid invoice type")
	ErrInvalidInvoiceLine    = apperrors.Kind(apperrors.ErrValidation, "invalid invoice line")
	ErrDueDateBeforeInvoice  = apperrors.Kind(apperrors.ErrValidation, "due date precedes invoice date")
	ErrMissingDefaultAccount = apperrors.Kind(apperrors.ErrConsistency, "default account required for invoice posting is missing")
)

var (
	ErrInvalidCurrencyCode  = apperrors.Kind(apperrors.ErrValidation, "invalid currency code")
	ErrInvalidExchangeRate  = apperrors.Kind(apperrors.ErrValidation, "exchange rate must be positive, and exactly 1 for the base currency")
	ErrCurrencyInactive     = apperrors.Kind(apperrors.ErrValidation, "currency is inactive")
	ErrBaseCurrencyInactive = apperrors.Kind(apperrors.ErrValidation, "base currency cannot be deactivated")
)
