// Package memory keeps every aggregate in process memory. It backs the
// "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// dataset is one consistent version of all aggregates.
type dataset struct {
	accounts    map[string]domain.Account
	entries     map[string]domain.JournalEntry
	invoices    map[string]domain.Invoice
	fiscalYears map[string]domain.FiscalYear
	currencies  map[string]domain.Currency

	entrySeq   int64
	invoiceSeq map[domain.InvoiceType]int64
}

func newDataset() *dataset {
	return &dataset{
		accounts:    make(map[string]domain.Account),
		entries:     make(map[string]domain.JournalEntry),
		invoices:    make(map[string]domain.Invoice),
		fiscalYears: make(map[string]domain.FiscalYear),
		currencies:  make(map[string]domain.Currency),
		invoiceSeq:  make(map[domain.InvoiceType]int64),
	}
}

// clone copies the maps. Values are cloned on the way in and out of the
// repositories, so stored values are never shared with callers.
func (d *dataset) clone() *dataset {
	c := &dataset{
		accounts:    make(map[string]domain.Account, len(d.accounts)),
		entries:     make(map[string]domain.JournalEntry, len(d.entries)),
		invoices:    make(map[string]domain.Invoice, len(d.invoices)),
		fiscalYears: make(map[string]domain.FiscalYear, len(d.fiscalYears)),
		currencies:  make(map[string]domain.Currency, len(d.currencies)),
		entrySeq:    d.entrySeq,
		invoiceSeq:  make(map[domain.InvoiceType]int64, len(d.invoiceSeq)),
	}
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.fiscalYears {
		c.fiscalYears[k] = v
	}
	for k, v := range d.currencies {
		c.currencies[k] = v
	}
	for k, v := range d.invoiceSeq {
		c.invoiceSeq[k] = v
	}
	return c
}

type txKey struct{}

// Store is an in-memory implementation of every repository port.
// Units of work run one at a time against a private copy of the data
// that replaces the committed copy only when the unit succeeds.
type Store struct {
	writeMu sync.Mutex   // serializes units of work
	mu      sync.RWMutex // guards data
	data    *dataset
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// RunInTx implements portsrepo.UnitOfWork.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*dataset); ok {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, work)); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// read runs f against the data visible to ctx.
func (s *Store) read(ctx context.Context, f func(d *dataset) error) error {
	if d, ok := ctx.Value(txKey{}).(*dataset); ok {
		return f(d)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f(s.data)
}

// write runs f inside the unit of work carried by ctx, or in a new one.
func (s *Store) write(ctx context.Context, f func(d *dataset) error) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		return f(ctx.Value(txKey{}).(*dataset))
	})
}

// Repositories returns the provider wiring every port to this store.
func (s *Store) Repositories() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:    &accountRepository{store: s},
		CurrencyRepo:   &currencyRepository{store: s},
		FiscalYearRepo: &fiscalYearRepository{store: s},
		JournalRepo:    &journalRepository{store: s},
		InvoiceRepo:    &invoiceRepository{store: s},
		UnitOfWork:     s,
	}
}
