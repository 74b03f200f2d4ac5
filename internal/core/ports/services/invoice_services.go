package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)
	ListInvoicesByType(ctx context.Context, invoiceType domain.InvoiceType) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines the invoice lifecycle operations
type InvoiceWriterSvc interface {
	// CreateInvoice creates a numbered draft.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// AddInvoiceLine appends a line to a draft and recomputes its totals.
	AddInvoiceLine(ctx context.Context, invoiceID string, req dto.AddInvoiceLineRequest, userID string) (*domain.Invoice, error)

	// PostInvoice books the invoice as one balanced, posted journal entry.
	PostInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels the invoice, reversing its journal entry if it was posted.
	CancelInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// MarkInvoiceAsPaid moves a posted invoice to paid.
	MarkInvoiceAsPaid(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// DeleteInvoice removes a draft invoice.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
