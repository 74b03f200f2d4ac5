package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice together with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByStatus retrieves invoices in status, ordered by date then number.
	FindInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)

	// FindInvoicesByType retrieves invoices of invoiceType, ordered by date then number.
	FindInvoicesByType(ctx context.Context, invoiceType domain.InvoiceType) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// NextInvoiceNumber allocates the next sequence value for invoiceType.
	NextInvoiceNumber(ctx context.Context, invoiceType domain.InvoiceType) (int64, error)

	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice replaces the header and lines of an invoice with the usual version check.
	UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error

	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
