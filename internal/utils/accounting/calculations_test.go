package accounting_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("100.00")

	tests := []struct {
		name        string
		accountType domain.AccountType
		side        accounting.Side
		want        string
	}{
		{"debit to asset increases", domain.Asset, accounting.Debit, "100"},
		{"credit to asset decreases", domain.Asset, accounting.Credit, "-100"},
		{"debit to expense increases", domain.Expense, accounting.Debit, "100"},
		{"credit to expense decreases", domain.Expense, accounting.Credit, "-100"},
		{"debit to liability decreases", domain.Liability, accounting.Debit, "-100"},
		{"credit to liability increases", domain.Liability, accounting.Credit, "100"},
		{"debit to equity decreases", domain.Equity, accounting.Debit, "-100"},
		{"credit to equity increases", domain.Equity, accounting.Credit, "100"},
		{"debit to income decreases", domain.Income, accounting.Debit, "-100"},
		{"credit to income increases", domain.Income, accounting.Credit, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.accountType, tt.side, amount)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSignedAmount_RoundTrip(t *testing.T) {
	x := decimal.RequireFromString("37.45")
	for _, accType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense} {
		up, err := accounting.SignedAmount(accType, accounting.Debit, x)
		require.NoError(t, err)
		down, err := accounting.SignedAmount(accType, accounting.Credit, x)
		require.NoError(t, err)
		assert.True(t, up.Add(down).IsZero(), "account type %s", accType)
	}
}

func TestSignedAmount_Rejects(t *testing.T) {
	_, err := accounting.SignedAmount(domain.Asset, accounting.Debit, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.SignedAmount(domain.AccountType("REVENUE"), accounting.Debit, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	_, err = accounting.SignedAmount(domain.Asset, accounting.Credit, decimal.RequireFromString("0.00005"))
	assert.ErrorIs(t, err, domain.ErrAmountTooPrecise)

	_, err = accounting.SignedAmount(domain.Asset, accounting.Credit, decimal.RequireFromString("1.23450"))
	assert.NoError(t, err, "trailing zeros beyond the stored scale are harmless")
}
