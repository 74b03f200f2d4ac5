package services_test

import (
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

func (suite *LedgerTestSuite) saveCurrency(code, rate string) *domain.Currency {
	c, err := suite.svc.Currency.SaveCurrency(suite.ctx, dto.SaveCurrencyRequest{
		CurrencyCode: code,
		Symbol:       code,
		Name:         code,
		ExchangeRate: dec(rate),
	}, testUser)
	suite.Require().NoError(err)
	return c
}

func (suite *LedgerTestSuite) TestFirstCurrencyBecomesBase() {
	usd := suite.saveCurrency("USD", "0")
	suite.True(usd.IsBaseCurrency)
	suite.True(usd.ExchangeRate.Equal(decimal.NewFromInt(1)))

	eur := suite.saveCurrency("EUR", "1.08")
	suite.False(eur.IsBaseCurrency)

	base, err := suite.svc.Currency.GetBaseCurrency(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("USD", base.CurrencyCode)
}

func (suite *LedgerTestSuite) TestSaveCurrencyRejects() {
	suite.saveCurrency("USD", "1")
	inactive := false

	tests := []struct {
		name    string
		req     dto.SaveCurrencyRequest
		wantErr error
	}{
		{"two letters", dto.SaveCurrencyRequest{CurrencyCode: "US", ExchangeRate: dec("1")}, domain.ErrInvalidCurrencyCode},
		{"digit in code", dto.SaveCurrencyRequest{CurrencyCode: "B1C", ExchangeRate: dec("1")}, domain.ErrInvalidCurrencyCode},
		{"four letters", dto.SaveCurrencyRequest{CurrencyCode: "USDT", ExchangeRate: dec("1")}, domain.ErrInvalidCurrencyCode},
		{"non-ASCII letter", dto.SaveCurrencyRequest{CurrencyCode: "ÉUR", ExchangeRate: dec("1")}, domain.ErrInvalidCurrencyCode},
		{"new currency without rate", dto.SaveCurrencyRequest{CurrencyCode: "EUR"}, domain.ErrInvalidExchangeRate},
		{"negative rate", dto.SaveCurrencyRequest{CurrencyCode: "EUR", ExchangeRate: dec("-2")}, domain.ErrInvalidExchangeRate},
		{"rate past eight places", dto.SaveCurrencyRequest{CurrencyCode: "EUR", ExchangeRate: dec("1.080000001")}, domain.ErrInvalidExchangeRate},
		{"base rate changed", dto.SaveCurrencyRequest{CurrencyCode: "USD", ExchangeRate: dec("2")}, domain.ErrInvalidExchangeRate},
		{"base deactivated", dto.SaveCurrencyRequest{CurrencyCode: "USD", IsActive: &inactive}, domain.ErrBaseCurrencyInactive},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.svc.Currency.SaveCurrency(suite.ctx, tt.req, testUser)
			suite.ErrorIs(err, tt.wantErr)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *LedgerTestSuite) TestSaveCurrencyAcceptsNonISOCodes() {
	suite.saveCurrency("USD", "1")

	btc := suite.saveCurrency("btc", "65000")
	suite.Equal("BTC", btc.CurrencyCode)
	suite.False(btc.IsBaseCurrency)

	points := suite.saveCurrency("PTS", "0.01")
	suite.Equal("PTS", points.CurrencyCode)

	got, err := suite.svc.Currency.Convert(suite.ctx, dec("2"), "BTC", "USD")
	suite.Require().NoError(err)
	suite.True(dec("130000").Equal(got), "got %s", got)
}

func (suite *LedgerTestSuite) TestSaveCurrencyUpdatesInPlace() {
	suite.saveCurrency("USD", "1")
	suite.saveCurrency("EUR", "1.08")

	updated, err := suite.svc.Currency.SaveCurrency(suite.ctx, dto.SaveCurrencyRequest{CurrencyCode: "eur", ExchangeRate: dec("1.10")}, testUser)
	suite.Require().NoError(err)
	suite.True(updated.ExchangeRate.Equal(dec("1.10")))
	suite.Equal("EUR", updated.Symbol)
	suite.Equal(int64(2), updated.Version)

	all, err := suite.svc.Currency.ListCurrencies(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *LedgerTestSuite) TestConvert() {
	suite.saveCurrency("USD", "1")
	suite.saveCurrency("EUR", "1.08")

	got, err := suite.svc.Currency.Convert(suite.ctx, dec("100"), "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(dec("108").Equal(got), "got %s", got)

	got, err = suite.svc.Currency.Convert(suite.ctx, dec("100"), "USD", "EUR")
	suite.Require().NoError(err)
	suite.True(dec("92.59").Equal(got), "got %s", got)

	got, err = suite.svc.Currency.Convert(suite.ctx, dec("12.345"), "EUR", "EUR")
	suite.Require().NoError(err)
	suite.True(dec("12.345").Equal(got))

	_, err = suite.svc.Currency.Convert(suite.ctx, dec("1"), "USD", "JPY")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestConvertRoundTrip() {
	suite.saveCurrency("USD", "1")
	suite.saveCurrency("EUR", "1.08")
	suite.saveCurrency("GBP", "1.27")
	suite.saveCurrency("JPY", "0.0067")

	tolerance := dec("0.01")
	codes := []string{"USD", "EUR", "GBP"}
	for _, from := range codes {
		for _, to := range codes {
			x := dec("100.00")
			there, err := suite.svc.Currency.Convert(suite.ctx, x, from, to)
			suite.Require().NoError(err)
			back, err := suite.svc.Currency.Convert(suite.ctx, there, to, from)
			suite.Require().NoError(err)
			suite.True(back.Sub(x).Abs().LessThanOrEqual(tolerance), "%s->%s->%s: %s", from, to, from, back)
		}
	}
}

func (suite *LedgerTestSuite) TestConvertInactiveRejected() {
	suite.saveCurrency("USD", "1")
	inactive := false
	_, err := suite.svc.Currency.SaveCurrency(suite.ctx, dto.SaveCurrencyRequest{CurrencyCode: "EUR", ExchangeRate: dec("1.08"), IsActive: &inactive}, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Currency.Convert(suite.ctx, dec("1"), "EUR", "USD")
	suite.ErrorIs(err, domain.ErrCurrencyInactive)
}

func (suite *LedgerTestSuite) TestSetAsBaseCurrency() {
	suite.saveCurrency("USD", "1")
	suite.saveCurrency("EUR", "1.08")

	eur, err := suite.svc.Currency.SetAsBaseCurrency(suite.ctx, "EUR", testUser)
	suite.Require().NoError(err)
	suite.True(eur.IsBaseCurrency)
	suite.True(eur.ExchangeRate.Equal(decimal.NewFromInt(1)))

	usd, err := suite.svc.Currency.GetCurrencyByCode(suite.ctx, "USD")
	suite.Require().NoError(err)
	suite.False(usd.IsBaseCurrency)
	suite.True(usd.ExchangeRate.Equal(decimal.NewFromInt(1)))

	all, err := suite.svc.Currency.ListCurrencies(suite.ctx)
	suite.Require().NoError(err)
	bases := 0
	for _, c := range all {
		if c.IsBaseCurrency {
			bases++
		}
	}
	suite.Equal(1, bases)

	_, err = suite.svc.Currency.SetAsBaseCurrency(suite.ctx, "CHF", testUser)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
