package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		CurrencyRepo:   newPgxCurrencyRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		UnitOfWork:     &unitOfWork{BaseRepository: BaseRepository{Pool: dbPool}},
	}
}
