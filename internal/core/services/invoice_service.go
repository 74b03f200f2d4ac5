package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultAccounts holds the account codes an invoice is posted against when
// its lines do not name an account.
type DefaultAccounts struct {
	Receivables string
	Payables    string
	TaxPayable  string
	Revenue     string
	Expense     string
}

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	accountRepo portsrepo.AccountReader
	journal     portssvc.JournalWriterSvc
	uow         portsrepo.UnitOfWork
	defaults    DefaultAccounts
}

// NewInvoiceService creates a new InvoiceService. Posting and cancelling go
// through journal so invoices never touch balances directly.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	journal portssvc.JournalWriterSvc,
	uow portsrepo.UnitOfWork,
	defaults DefaultAccounts,
	options ...ServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		journal:     journal,
		uow:         uow,
		defaults:    defaults,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.Date.IsZero() {
		return nil, domain.ErrDateMissing
	}
	inv := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		InvoiceType: req.InvoiceType,
		Status:      domain.InvoiceDraft,
		Date:        domain.DateOnly(req.Date),
		CustomerID:  req.CustomerID,
		SupplierID:  req.SupplierID,
		Lines:       []domain.InvoiceLine{},
		Subtotal:    decimal.Zero,
		Tax:         decimal.Zero,
		Total:       decimal.Zero,
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := inv.ValidateParty(); err != nil {
		return nil, err
	}
	if req.DueDate != nil {
		due := domain.DateOnly(*req.DueDate)
		if due.Before(inv.Date) {
			return nil, domain.ErrDueDateBeforeInvoice
		}
		inv.DueDate = &due
	}

	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.invoiceRepo.NextInvoiceNumber(ctx, inv.InvoiceType)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = fmt.Sprintf("%s-%06d", inv.InvoiceType.NumberPrefix(), n)
		return s.invoiceRepo.SaveInvoice(ctx, inv)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create invoice", slog.String("invoice_type", string(req.InvoiceType)))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber))
	return &inv, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindInvoicesByStatus(ctx, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by status", slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) ListInvoicesByType(ctx context.Context, invoiceType domain.InvoiceType) ([]domain.Invoice, error) {
	if !invoiceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInvoiceType, invoiceType)
	}
	invoices, err := s.invoiceRepo.FindInvoicesByType(ctx, invoiceType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices by type", slog.String("invoice_type", string(invoiceType)))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// update loads the invoice, applies change and saves it in one unit of work.
func (s *invoiceService) update(ctx context.Context, invoiceID, userID string, change func(ctx context.Context, inv *domain.Invoice) error) (*domain.Invoice, error) {
	var inv *domain.Invoice
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := change(ctx, inv); err != nil {
			return err
		}
		inv.Touch(userID, s.Now())
		return s.invoiceRepo.UpdateInvoice(ctx, inv)
	})
	return inv, err
}

func (s *invoiceService) AddInvoiceLine(ctx context.Context, invoiceID string, req dto.AddInvoiceLineRequest, userID string) (*domain.Invoice, error) {
	inv, err := s.update(ctx, invoiceID, userID, func(ctx context.Context, inv *domain.Invoice) error {
		line := domain.InvoiceLine{
			LineID:      uuid.NewString(),
			Description: strings.TrimSpace(req.Description),
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			TaxRate:     req.TaxRate,
		}
		if req.AccountID != nil && *req.AccountID != "" {
			account, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID)
			if err != nil {
				return err
			}
			if !account.IsActive {
				return fmt.Errorf("%w: %s", domain.ErrAccountInactive, account.Code)
			}
			accountID := account.AccountID
			line.AccountID = &accountID
		}
		return inv.AddLine(line)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to add invoice line", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogDebug(ctx, "Invoice line added",
		slog.String("invoice_id", invoiceID),
		slog.String("total", inv.Total.String()))
	return inv, nil
}

// PostInvoice books the invoice as one balanced journal entry and marks it
// posted. On failure the invoice stays a draft and no entry is kept.
func (s *invoiceService) PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	inv, err := s.update(ctx, invoiceID, userID, func(ctx context.Context, inv *domain.Invoice) error {
		if err := inv.CanPost(); err != nil {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, err)
		}
		lines, err := s.journalLines(ctx, inv)
		if err != nil {
			return err
		}

		reference := inv.InvoiceNumber
		entry, err := s.journal.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
			Date:        inv.Date,
			Description: fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
			Reference:   &reference,
			Lines:       lines,
		}, userID)
		if err != nil {
			return err
		}
		if _, err := s.journal.PostJournalEntry(ctx, entry.EntryID, userID); err != nil {
			return err
		}
		return inv.MarkPosted(entry.EntryID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to post invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice posted successfully",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("journal_entry_id", *inv.JournalEntryID))
	return inv, nil
}

// journalLines builds the entry for inv. Tax from every line is aggregated
// onto the single tax-payable account. Lines with a zero subtotal are skipped.
func (s *invoiceService) journalLines(ctx context.Context, inv *domain.Invoice) ([]dto.JournalLineRequest, error) {
	resolver := &accountResolver{repo: s.accountRepo, byCode: map[string]string{}}

	var counterCode, lineCode string
	sale := inv.InvoiceType == domain.InvoiceSale
	if sale {
		counterCode, lineCode = s.defaults.Receivables, s.defaults.Revenue
	} else {
		counterCode, lineCode = s.defaults.Payables, s.defaults.Expense
	}

	// The counter line takes the debit on a sale; the other lines take the opposite side.
	side := func(accountID string, amount decimal.Decimal, debit bool, memo string) dto.JournalLineRequest {
		l := dto.JournalLineRequest{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.Zero, Memo: memo}
		if debit {
			l.Debit = amount
		} else {
			l.Credit = amount
		}
		return l
	}

	counterID, err := resolver.resolve(ctx, counterCode)
	if err != nil {
		return nil, err
	}
	lines := []dto.JournalLineRequest{side(counterID, inv.Total, sale, inv.InvoiceNumber)}

	for _, l := range inv.Lines {
		if l.Subtotal.IsZero() {
			continue
		}
		accountID := ""
		if l.AccountID != nil {
			accountID = *l.AccountID
		} else if accountID, err = resolver.resolve(ctx, lineCode); err != nil {
			return nil, err
		}
		lines = append(lines, side(accountID, l.Subtotal, !sale, l.Description))
	}

	if inv.Tax.IsPositive() {
		taxID, err := resolver.resolve(ctx, s.defaults.TaxPayable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, side(taxID, inv.Tax, !sale, "Tax"))
	}
	return lines, nil
}

type accountResolver struct {
	repo   portsrepo.AccountReader
	byCode map[string]string
}

func (r *accountResolver) resolve(ctx context.Context, code string) (string, error) {
	if id, ok := r.byCode[code]; ok {
		return id, nil
	}
	if code == "" {
		return "", fmt.Errorf("%w: no account code configured", domain.ErrMissingDefaultAccount)
	}
	account, err := r.repo.FindAccountByCode(ctx, code)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingDefaultAccount, code)
	}
	if err != nil {
		return "", err
	}
	r.byCode[code] = account.AccountID
	return account.AccountID, nil
}

// CancelInvoice cancels a draft or posted invoice. A posted invoice has its
// journal entry reversed, dated today.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	inv, err := s.update(ctx, invoiceID, userID, func(ctx context.Context, inv *domain.Invoice) error {
		wasPosted := inv.Status == domain.InvoicePosted
		if err := inv.Cancel(); err != nil {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, err)
		}
		if !wasPosted || inv.JournalEntryID == nil {
			return nil
		}
		_, err := s.journal.ReverseJournalEntry(ctx, *inv.JournalEntryID, dto.ReverseJournalEntryRequest{
			Date:        domain.DateOnly(s.Now()),
			Description: fmt.Sprintf("Cancellation of invoice %s", inv.InvoiceNumber),
		}, userID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to cancel invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice cancelled successfully", slog.String("invoice_id", invoiceID))
	return inv, nil
}

func (s *invoiceService) MarkInvoiceAsPaid(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	inv, err := s.update(ctx, invoiceID, userID, func(_ context.Context, inv *domain.Invoice) error {
		if err := inv.MarkPaid(); err != nil {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, err)
		}
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to mark invoice as paid", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice marked as paid", slog.String("invoice_id", invoiceID))
	return inv, nil
}

// DeleteInvoice removes a draft invoice.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, domain.ErrInvoiceNotDraft)
		}
		return s.invoiceRepo.DeleteInvoice(ctx, invoiceID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}

	s.LogInfo(ctx, "Invoice deleted successfully", slog.String("invoice_id", invoiceID))
	return nil
}
