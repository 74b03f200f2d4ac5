package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type invoiceRepository struct {
	store *Store
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var found *domain.Invoice
	err := r.store.read(ctx, func(d *dataset) error {
		inv, ok := d.invoices[invoiceID]
		if !ok {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		c := inv.Clone()
		found = &c
		return nil
	})
	return found, err
}

func (r *invoiceRepository) filter(ctx context.Context, keep func(domain.Invoice) bool) ([]domain.Invoice, error) {
	result := make([]domain.Invoice, 0)
	err := r.store.read(ctx, func(d *dataset) error {
		for _, inv := range d.invoices {
			if keep(inv) {
				result = append(result, inv.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].InvoiceNumber < result[j].InvoiceNumber
	})
	return result, err
}

func (r *invoiceRepository) FindInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	return r.filter(ctx, func(inv domain.Invoice) bool { return inv.Status == status })
}

func (r *invoiceRepository) FindInvoicesByType(ctx context.Context, invoiceType domain.InvoiceType) ([]domain.Invoice, error) {
	return r.filter(ctx, func(inv domain.Invoice) bool { return inv.InvoiceType == invoiceType })
}

func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context, invoiceType domain.InvoiceType) (int64, error) {
	var next int64
	err := r.store.write(ctx, func(d *dataset) error {
		d.invoiceSeq[invoiceType]++
		next = d.invoiceSeq[invoiceType]
		return nil
	})
	return next, err
}

func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, exists := d.invoices[invoice.InvoiceID]; exists {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, invoice.InvoiceID)
		}
		for _, inv := range d.invoices {
			if inv.InvoiceNumber == invoice.InvoiceNumber {
				return fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicate, invoice.InvoiceNumber)
			}
		}
		d.invoices[invoice.InvoiceID] = invoice.Clone()
		return nil
	})
}

func (r *invoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	return r.store.write(ctx, func(d *dataset) error {
		stored, ok := d.invoices[invoice.InvoiceID]
		if !ok {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoice.InvoiceID)
		}
		if stored.Version != invoice.Version {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrConcurrentModification)
		}
		invoice.Version++
		d.invoices[invoice.InvoiceID] = invoice.Clone()
		return nil
	})
}

func (r *invoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, ok := d.invoices[invoiceID]; !ok {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		delete(d.invoices, invoiceID)
		return nil
	})
}
