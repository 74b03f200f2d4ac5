package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, invoice_type, status, invoice_date, due_date,
	customer_id, supplier_id, subtotal, tax, total, journal_entry_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row scanner) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.InvoiceNumber,
		&inv.InvoiceType,
		&inv.Status,
		&inv.Date,
		&inv.DueDate,
		&inv.CustomerID,
		&inv.SupplierID,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Total,
		&inv.JournalEntryID,
		&inv.Version,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	return inv, err
}

func (r *PgxInvoiceRepository) loadLines(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, len(invoices))
	index := make(map[string]int, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
		index[inv.InvoiceID] = i
		invoices[i].Lines = make([]domain.InvoiceLine, 0)
	}

	rows, err := r.db(ctx).Query(ctx, `
		SELECT invoice_id, line_id, description, quantity, unit_price, tax_rate,
		       subtotal, tax, total, account_id
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, line_no;
	`, ids)
	if err != nil {
		return mapError(err, "invoice lines")
	}
	defer rows.Close()

	for rows.Next() {
		var invoiceID string
		var l domain.InvoiceLine
		if err := rows.Scan(&invoiceID, &l.LineID, &l.Description, &l.Quantity, &l.UnitPrice, &l.TaxRate,
			&l.Subtotal, &l.Tax, &l.Total, &l.AccountID); err != nil {
			return mapError(err, "invoice lines")
		}
		i := index[invoiceID]
		invoices[i].Lines = append(invoices[i].Lines, l)
	}
	return mapError(rows.Err(), "invoice lines")
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`
	inv, err := scanInvoice(r.db(ctx).QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, mapError(err, "invoice "+invoiceID)
	}
	invoices := []domain.Invoice{inv}
	if err := r.loadLines(ctx, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) list(ctx context.Context, where string, arg any) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where + ` ORDER BY invoice_date, invoice_number`
	rows, err := r.db(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "invoices")
	}
	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, mapError(err, "invoices")
	}
	if err := r.loadLines(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) FindInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	return r.list(ctx, `status = $1`, status)
}

func (r *PgxInvoiceRepository) FindInvoicesByType(ctx context.Context, invoiceType domain.InvoiceType) ([]domain.Invoice, error) {
	return r.list(ctx, `invoice_type = $1`, invoiceType)
}

// NextInvoiceNumber bumps the per-type counter. The row lock taken by the
// upsert serialises concurrent callers.
func (r *PgxInvoiceRepository) NextInvoiceNumber(ctx context.Context, invoiceType domain.InvoiceType) (int64, error) {
	var next int64
	err := r.db(ctx).QueryRow(ctx, `
		INSERT INTO invoice_counters (invoice_type, last_number)
		VALUES ($1, 1)
		ON CONFLICT (invoice_type) DO UPDATE SET last_number = invoice_counters.last_number + 1
		RETURNING last_number;
	`, invoiceType).Scan(&next)
	return next, mapError(err, "invoice number")
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.InvoiceType,
		invoice.Status,
		invoice.Date,
		invoice.DueDate,
		invoice.CustomerID,
		invoice.SupplierID,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Total,
		invoice.JournalEntryID,
		invoice.Version,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "invoice "+invoice.InvoiceID)
	}
	return r.insertLines(ctx, invoice)
}

func (r *PgxInvoiceRepository) insertLines(ctx context.Context, invoice domain.Invoice) error {
	if len(invoice.Lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, line_no, description, quantity, unit_price,
		                           tax_rate, subtotal, tax, total, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for i, l := range invoice.Lines {
		batch.Queue(lineQuery, l.LineID, invoice.InvoiceID, i, l.Description, l.Quantity, l.UnitPrice,
			l.TaxRate, l.Subtotal, l.Tax, l.Total, l.AccountID)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err, "invoice lines of "+invoice.InvoiceID)
	}
	return nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	what := "invoice " + invoice.InvoiceID
	query := `
		UPDATE invoices
		SET status = $3, invoice_date = $4, due_date = $5, customer_id = $6, supplier_id = $7,
		    subtotal = $8, tax = $9, total = $10, journal_entry_id = $11,
		    last_updated_at = $12, last_updated_by = $13, version = version + 1
		WHERE invoice_id = $1 AND version = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		invoice.InvoiceID,
		invoice.Version,
		invoice.Status,
		invoice.Date,
		invoice.DueDate,
		invoice.CustomerID,
		invoice.SupplierID,
		invoice.Subtotal,
		invoice.Tax,
		invoice.Total,
		invoice.JournalEntryID,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, what)
	}
	if err := r.checkVersioned(ctx, tag, `SELECT EXISTS (SELECT 1 FROM invoices WHERE invoice_id = $1)`, invoice.InvoiceID, what); err != nil {
		return err
	}

	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoice.InvoiceID); err != nil {
		return mapError(err, what)
	}
	if err := r.insertLines(ctx, *invoice); err != nil {
		return err
	}
	invoice.Version++
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return mapError(err, "invoice "+invoiceID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "invoice "+invoiceID)
	}
	return nil
}
