package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Side is the side of a posting.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// SignedAmount returns the change in balance caused by posting amount on side to an account of accountType.
// This is the only place the sign rule lives:
//
//	DEBIT to ASSET/EXPENSE -> Positive (+)
//	CREDIT to ASSET/EXPENSE -> Negative (-)
//	DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
//	CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func SignedAmount(accountType domain.AccountType, side Side, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, domain.ErrNegativeAmount
	}
	if !domain.FitsScale(amount, domain.AmountScale) {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrAmountTooPrecise, amount)
	}
	isDebit := side == Debit
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown account type '%s'", domain.ErrInvalidAccountType, accountType)
	}
	return amount, nil
}
