package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func strPtr(s string) *string { return &s }

type chart struct {
	receivables, payables, tax, sales, expense *domain.Account
}

func (suite *LedgerTestSuite) defaultChart() chart {
	return chart{
		receivables: suite.createAccount("1.1.02", "Receivables", domain.Asset, nil),
		payables:    suite.createAccount("2.1.01", "Payables", domain.Liability, nil),
		tax:         suite.createAccount("2.1.02", "Tax payable", domain.Liability, nil),
		sales:       suite.createAccount("4.1.01", "Sales", domain.Income, nil),
		expense:     suite.createAccount("5.1.01", "Purchases", domain.Expense, nil),
	}
}

func (suite *LedgerTestSuite) saleInvoice(lines ...dto.AddInvoiceLineRequest) *domain.Invoice {
	inv, err := suite.svc.Invoice.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceType: domain.InvoiceSale,
		Date:        today,
		CustomerID:  strPtr("customer-1"),
	}, testUser)
	suite.Require().NoError(err)
	for _, l := range lines {
		inv, err = suite.svc.Invoice.AddInvoiceLine(suite.ctx, inv.InvoiceID, l, testUser)
		suite.Require().NoError(err)
	}
	return inv
}

func widgets() dto.AddInvoiceLineRequest {
	return dto.AddInvoiceLineRequest{Description: "Widget", Quantity: dec("2"), UnitPrice: dec("100.00"), TaxRate: dec("21")}
}

func (suite *LedgerTestSuite) TestPostSaleInvoice() {
	c := suite.defaultChart()
	inv := suite.saleInvoice(widgets())

	suite.True(dec("200.00").Equal(inv.Subtotal))
	suite.True(dec("42.00").Equal(inv.Tax))
	suite.True(dec("242.00").Equal(inv.Total))
	suite.Equal("INV-000001", inv.InvoiceNumber)

	posted, err := suite.svc.Invoice.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePosted, posted.Status)
	suite.Require().NotNil(posted.JournalEntryID)

	entry, err := suite.svc.Journal.GetJournalEntryByID(suite.ctx, *posted.JournalEntryID)
	suite.Require().NoError(err)
	suite.True(entry.Posted)
	suite.True(entry.IsBalanced())
	suite.Equal("INV-000001", *entry.Reference)
	suite.Require().Len(entry.Lines, 3)
	suite.Equal(c.receivables.AccountID, entry.Lines[0].AccountID)
	suite.True(dec("242").Equal(entry.Lines[0].Debit))
	suite.Equal(c.sales.AccountID, entry.Lines[1].AccountID)
	suite.True(dec("200").Equal(entry.Lines[1].Credit))
	suite.Equal(c.tax.AccountID, entry.Lines[2].AccountID)
	suite.True(dec("42").Equal(entry.Lines[2].Credit))

	suite.assertBalance("242", c.receivables)
	suite.assertBalance("200", c.sales)
	suite.assertBalance("42", c.tax)

	_, err = suite.svc.Invoice.AddInvoiceLine(suite.ctx, inv.InvoiceID, widgets(), testUser)
	suite.ErrorIs(err, domain.ErrInvoiceNotDraft)
}

func (suite *LedgerTestSuite) TestPostPurchaseInvoice() {
	c := suite.defaultChart()
	office := suite.createAccount("5.2.01", "Office", domain.Expense, nil)

	inv, err := suite.svc.Invoice.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceType: domain.InvoicePurchase,
		Date:        today,
		SupplierID:  strPtr("supplier-1"),
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal("BILL-000001", inv.InvoiceNumber)

	_, err = suite.svc.Invoice.AddInvoiceLine(suite.ctx, inv.InvoiceID, dto.AddInvoiceLineRequest{
		Description: "Paper", Quantity: dec("10"), UnitPrice: dec("5"), TaxRate: dec("10"), AccountID: &office.AccountID,
	}, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.Invoice.AddInvoiceLine(suite.ctx, inv.InvoiceID, dto.AddInvoiceLineRequest{
		Description: "Stock", Quantity: dec("1"), UnitPrice: dec("100"), TaxRate: dec("0"),
	}, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Invoice.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)

	suite.assertBalance("50", office)
	suite.assertBalance("100", c.expense)
	suite.assertBalance("-5", c.tax)
	suite.assertBalance("155", c.payables)
}

func (suite *LedgerTestSuite) TestPostInvoiceMissingDefaultAccountRollsBack() {
	receivables := suite.createAccount("1.1.02", "Receivables", domain.Asset, nil)
	suite.createAccount("4.1.01", "Sales", domain.Income, nil)
	inv := suite.saleInvoice(widgets())

	_, err := suite.svc.Invoice.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrMissingDefaultAccount)
	suite.ErrorIs(err, apperrors.ErrConsistency)

	stored, err := suite.svc.Invoice.GetInvoiceByID(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceDraft, stored.Status)
	suite.Nil(stored.JournalEntryID)

	entries, err := suite.svc.Journal.ListJournalEntriesByDateRange(suite.ctx, today.AddDate(-1, 0, 0), today.AddDate(1, 0, 0))
	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.assertBalance("0", receivables)
}

// brokenCodeLookup fails every lookup by code the way a dropped connection does.
type brokenCodeLookup struct {
	portsrepo.AccountReader
}

func (brokenCodeLookup) FindAccountByCode(context.Context, string) (*domain.Account, error) {
	return nil, apperrors.NewAppError(500, "database error on account", errors.New("connection reset"))
}

func (suite *LedgerTestSuite) TestPostInvoiceSurfacesLookupFailure() {
	c := suite.defaultChart()
	inv := suite.saleInvoice(widgets())

	svc := services.NewInvoiceService(
		suite.repos.InvoiceRepo,
		brokenCodeLookup{AccountReader: suite.repos.AccountRepo},
		suite.svc.Journal,
		suite.repos.UnitOfWork,
		services.DefaultAccounts{Receivables: "1.1.02", Payables: "2.1.01", TaxPayable: "2.1.02", Revenue: "4.1.01", Expense: "5.1.01"},
		services.WithClock(func() time.Time { return today }),
	)

	_, err := svc.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.NotErrorIs(err, domain.ErrMissingDefaultAccount)
	suite.NotErrorIs(err, apperrors.ErrConsistency)
	suite.ErrorContains(err, "connection reset")

	stored, err := suite.svc.Invoice.GetInvoiceByID(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceDraft, stored.Status)
	suite.assertBalance("0", c.receivables)
}

func (suite *LedgerTestSuite) TestAddInvoiceLineRejectsUnstorablePrecision() {
	suite.defaultChart()
	inv := suite.saleInvoice()

	_, err := suite.svc.Invoice.AddInvoiceLine(suite.ctx, inv.InvoiceID, dto.AddInvoiceLineRequest{
		Description: "Bolts", Quantity: dec("1.00005"), UnitPrice: dec("3"), TaxRate: dec("0"),
	}, testUser)
	suite.ErrorIs(err, domain.ErrAmountTooPrecise)
	suite.ErrorIs(err, apperrors.ErrValidation)

	stored, err := suite.svc.Invoice.GetInvoiceByID(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Empty(stored.Lines)
}

func (suite *LedgerTestSuite) TestPostInvoiceRejects() {
	suite.defaultChart()

	empty := suite.saleInvoice()
	_, err := suite.svc.Invoice.PostInvoice(suite.ctx, empty.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrInvoiceNoLines)

	free := suite.saleInvoice(dto.AddInvoiceLineRequest{Description: "Gift", Quantity: dec("1"), UnitPrice: dec("0")})
	_, err = suite.svc.Invoice.PostInvoice(suite.ctx, free.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrInvoiceZeroTotal)
}

func (suite *LedgerTestSuite) TestCancelPostedInvoiceReverses() {
	c := suite.defaultChart()
	inv := suite.saleInvoice(widgets())
	posted, err := suite.svc.Invoice.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)

	cancelled, err := suite.svc.Invoice.CancelInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, cancelled.Status)

	suite.assertBalance("0", c.receivables)
	suite.assertBalance("0", c.sales)
	suite.assertBalance("0", c.tax)

	original, err := suite.svc.Journal.GetJournalEntryByID(suite.ctx, *posted.JournalEntryID)
	suite.Require().NoError(err)
	suite.True(original.Posted)
	suite.NotNil(original.ReversedByEntryID)

	_, err = suite.svc.Invoice.CancelInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrInvoiceCancelled)
}

func (suite *LedgerTestSuite) TestCancelDraftInvoice() {
	inv := suite.saleInvoice()

	cancelled, err := suite.svc.Invoice.CancelInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceCancelled, cancelled.Status)
	suite.Nil(cancelled.JournalEntryID)
}

func (suite *LedgerTestSuite) TestMarkAsPaid() {
	suite.defaultChart()
	inv := suite.saleInvoice(widgets())

	_, err := suite.svc.Invoice.MarkInvoiceAsPaid(suite.ctx, inv.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrInvoiceNotPosted)

	_, err = suite.svc.Invoice.PostInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)
	paid, err := suite.svc.Invoice.MarkInvoiceAsPaid(suite.ctx, inv.InvoiceID, testUser)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, paid.Status)

	_, err = suite.svc.Invoice.CancelInvoice(suite.ctx, inv.InvoiceID, testUser)
	suite.ErrorIs(err, domain.ErrInvoicePaid)

	byStatus, err := suite.svc.Invoice.ListInvoicesByStatus(suite.ctx, domain.InvoicePaid)
	suite.Require().NoError(err)
	suite.Len(byStatus, 1)
}

func (suite *LedgerTestSuite) TestCreateInvoiceRejects() {
	yesterday := today.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		req     dto.CreateInvoiceRequest
		wantErr error
	}{
		{"sale with supplier", dto.CreateInvoiceRequest{InvoiceType: domain.InvoiceSale, Date: today, SupplierID: strPtr("s")}, domain.ErrInvoiceParty},
		{"purchase with both parties", dto.CreateInvoiceRequest{InvoiceType: domain.InvoicePurchase, Date: today, CustomerID: strPtr("c"), SupplierID: strPtr("s")}, domain.ErrInvoiceParty},
		{"unknown type", dto.CreateInvoiceRequest{InvoiceType: "QUOTE", Date: today, CustomerID: strPtr("c")}, domain.ErrInvalidInvoiceType},
		{"due before date", dto.CreateInvoiceRequest{InvoiceType: domain.InvoiceSale, Date: today, DueDate: &yesterday, CustomerID: strPtr("c")}, domain.ErrDueDateBeforeInvoice},
		{"no date", dto.CreateInvoiceRequest{InvoiceType: domain.InvoiceSale, CustomerID: strPtr("c")}, domain.ErrDateMissing},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.svc.Invoice.CreateInvoice(suite.ctx, tt.req, testUser)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *LedgerTestSuite) TestDeleteInvoice() {
	suite.defaultChart()
	draft := suite.saleInvoice()
	suite.Require().NoError(suite.svc.Invoice.DeleteInvoice(suite.ctx, draft.InvoiceID))

	posted := suite.saleInvoice(widgets())
	_, err := suite.svc.Invoice.PostInvoice(suite.ctx, posted.InvoiceID, testUser)
	suite.Require().NoError(err)
	suite.ErrorIs(suite.svc.Invoice.DeleteInvoice(suite.ctx, posted.InvoiceID), domain.ErrInvoiceNotDraft)

	sales, err := suite.svc.Invoice.ListInvoicesByType(suite.ctx, domain.InvoiceSale)
	suite.Require().NoError(err)
	suite.Len(sales, 1)
}
