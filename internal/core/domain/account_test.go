package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAccountCode(t *testing.T) {
	for _, code := range []string{"1", "1.1.01", "A.B2", "4000"} {
		assert.True(t, domain.ValidAccountCode(code), code)
	}
	for _, code := range []string{"", "1..1", ".1", "1.", "1 1", "1-1"} {
		assert.False(t, domain.ValidAccountCode(code), code)
	}
}

func TestAccountType_IsValid(t *testing.T) {
	assert.True(t, domain.Income.IsValid())
	assert.False(t, domain.AccountType("REVENUE").IsValid())
}

func TestBuildAccountTree(t *testing.T) {
	assets := domain.Account{AccountID: "1", Code: "1"}
	current := domain.Account{AccountID: "11", Code: "1.1", ParentAccountID: strPtr("1")}
	cash := domain.Account{AccountID: "111", Code: "1.1.01", ParentAccountID: strPtr("11")}
	income := domain.Account{AccountID: "4", Code: "4"}
	orphan := domain.Account{AccountID: "9", Code: "9.1", ParentAccountID: strPtr("missing")}

	roots := domain.BuildAccountTree([]domain.Account{assets, current, cash, income, orphan})

	require.Len(t, roots, 3)
	assert.Equal(t, "1", roots[0].Code)
	assert.Equal(t, "4", roots[1].Code)
	assert.Equal(t, "9.1", roots[2].Code)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "1.1.01", roots[0].Children[0].Children[0].Code)
}

func TestFiscalYear_Contains(t *testing.T) {
	start, end := domain.CalendarYearBounds(2024)
	fy := domain.FiscalYear{Year: 2024, StartDate: start, EndDate: end}

	assert.True(t, fy.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, fy.Contains(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFiscalYear_CloseReopen(t *testing.T) {
	fy := domain.FiscalYear{IsCurrent: true}

	require.NoError(t, fy.Close())
	assert.True(t, fy.IsClosed)
	assert.False(t, fy.IsCurrent)
	assert.ErrorIs(t, fy.Close(), domain.ErrFiscalYearClosed)

	require.NoError(t, fy.Reopen())
	assert.False(t, fy.IsClosed)
	assert.False(t, fy.IsCurrent)
	assert.ErrorIs(t, fy.Reopen(), domain.ErrFiscalYearNotClosed)
}

func TestCurrency_BaseSwap(t *testing.T) {
	usd := domain.Currency{CurrencyCode: "USD", ExchangeRate: dec("1"), IsBaseCurrency: true}
	eur := domain.Currency{CurrencyCode: "EUR", ExchangeRate: dec("1.08")}

	usd.DemoteFromBase()
	eur.PromoteToBase()

	assert.False(t, usd.IsBaseCurrency)
	assert.True(t, eur.IsBaseCurrency)
	assert.True(t, eur.ExchangeRate.Equal(dec("1")))
	assert.True(t, usd.ExchangeRate.Equal(dec("1")))
}
