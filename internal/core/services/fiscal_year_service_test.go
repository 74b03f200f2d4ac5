package services_test

import (
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func (suite *LedgerTestSuite) createYear(year int) *domain.FiscalYear {
	start, end := domain.CalendarYearBounds(year)
	fy, err := suite.svc.FiscalYear.CreateFiscalYear(suite.ctx, dto.CreateFiscalYearRequest{Year: year, StartDate: start, EndDate: end}, testUser)
	suite.Require().NoError(err)
	return fy
}

func (suite *LedgerTestSuite) TestCloseTwiceThenReopen() {
	fy := suite.createYear(2023)

	closed, err := suite.svc.FiscalYear.CloseFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.Require().NoError(err)
	suite.True(closed.IsClosed)

	_, err = suite.svc.FiscalYear.CloseFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.ErrorIs(err, domain.ErrFiscalYearClosed)
	suite.ErrorIs(err, apperrors.ErrConflict)

	reopened, err := suite.svc.FiscalYear.ReopenFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.Require().NoError(err)
	suite.False(reopened.IsClosed)

	_, err = suite.svc.FiscalYear.ReopenFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.ErrorIs(err, domain.ErrFiscalYearNotClosed)
}

func (suite *LedgerTestSuite) TestSetCurrentIsExclusive() {
	a := suite.createYear(2023)
	b := suite.createYear(2024)

	_, err := suite.svc.FiscalYear.SetCurrentFiscalYear(suite.ctx, a.FiscalYearID, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.FiscalYear.SetCurrentFiscalYear(suite.ctx, b.FiscalYearID, testUser)
	suite.Require().NoError(err)

	years, err := suite.svc.FiscalYear.ListFiscalYears(suite.ctx)
	suite.Require().NoError(err)
	current := 0
	for _, fy := range years {
		if fy.IsCurrent {
			current++
			suite.Equal(b.FiscalYearID, fy.FiscalYearID)
		}
	}
	suite.Equal(1, current)
}

func (suite *LedgerTestSuite) TestCloseClearsCurrentAndReopenDoesNotRestore() {
	fy := suite.createYear(2024)
	_, err := suite.svc.FiscalYear.SetCurrentFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.Require().NoError(err)

	closed, err := suite.svc.FiscalYear.CloseFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.Require().NoError(err)
	suite.False(closed.IsCurrent)

	_, err = suite.svc.FiscalYear.SetCurrentFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.ErrorIs(err, domain.ErrFiscalYearClosed)

	reopened, err := suite.svc.FiscalYear.ReopenFiscalYear(suite.ctx, fy.FiscalYearID, testUser)
	suite.Require().NoError(err)
	suite.False(reopened.IsCurrent)

	open, err := suite.svc.FiscalYear.ListOpenFiscalYears(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(open, 1)
}

func (suite *LedgerTestSuite) TestCreateFiscalYearRejects() {
	suite.createYear(2024)

	tests := []struct {
		name    string
		req     dto.CreateFiscalYearRequest
		wantErr error
	}{
		{"duplicate year", dto.CreateFiscalYearRequest{Year: 2024, StartDate: date(2030, 1, 1), EndDate: date(2030, 12, 31)}, apperrors.ErrDuplicate},
		{"end before start", dto.CreateFiscalYearRequest{Year: 2025, StartDate: date(2025, 12, 31), EndDate: date(2025, 1, 1)}, domain.ErrInvalidPeriod},
		{"overlap", dto.CreateFiscalYearRequest{Year: 2025, StartDate: date(2024, 7, 1), EndDate: date(2025, 6, 30)}, domain.ErrFiscalYearOverlap},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.svc.FiscalYear.CreateFiscalYear(suite.ctx, tt.req, testUser)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *LedgerTestSuite) TestIsDateWithin() {
	fy := suite.createYear(2024)

	within, err := suite.svc.FiscalYear.IsDateWithin(suite.ctx, fy.FiscalYearID, date(2024, 12, 31))
	suite.Require().NoError(err)
	suite.True(within)

	within, err = suite.svc.FiscalYear.IsDateWithin(suite.ctx, fy.FiscalYearID, date(2025, 1, 1))
	suite.Require().NoError(err)
	suite.False(within)

	_, err = suite.svc.FiscalYear.IsDateWithin(suite.ctx, "missing", date(2024, 1, 1))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestGetOrCreateCurrent() {
	fy, err := suite.svc.FiscalYear.GetOrCreateCurrent(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(today.Year(), fy.Year)
	suite.True(fy.IsCurrent)
	suite.True(fy.Contains(today))

	again, err := suite.svc.FiscalYear.GetOrCreateCurrent(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(fy.FiscalYearID, again.FiscalYearID)

	years, err := suite.svc.FiscalYear.ListFiscalYears(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(years, 1)
}

func (suite *LedgerTestSuite) TestGetOrCreateCurrentPrefersYearCoveringToday() {
	split, err := suite.svc.FiscalYear.CreateFiscalYear(suite.ctx, dto.CreateFiscalYearRequest{
		Year: 2023, StartDate: date(2023, 7, 1), EndDate: date(2024, 6, 30),
	}, testUser)
	suite.Require().NoError(err)

	fy, err := suite.svc.FiscalYear.GetOrCreateCurrent(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Equal(split.FiscalYearID, fy.FiscalYearID)
	suite.True(fy.IsCurrent)
	suite.True(fy.Contains(today))

	years, err := suite.svc.FiscalYear.ListFiscalYears(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(years, 1)
}

func (suite *LedgerTestSuite) TestGetOrCreateCurrentRefusesClosedYearCoveringToday() {
	split, err := suite.svc.FiscalYear.CreateFiscalYear(suite.ctx, dto.CreateFiscalYearRequest{
		Year: 2023, StartDate: date(2023, 7, 1), EndDate: date(2024, 6, 30),
	}, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.FiscalYear.CloseFiscalYear(suite.ctx, split.FiscalYearID, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.FiscalYear.GetOrCreateCurrent(suite.ctx, testUser)
	suite.ErrorIs(err, domain.ErrFiscalYearClosed)
}
