package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer wires every service against repos. Services share the
// repositories' unit of work, so an invoice posting, its journal entry and the
// balance moves commit together.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo, repos.UnitOfWork, options...)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.UnitOfWork, cfg.CurrencyScale, options...)
	container.Account = NewAccountService(repos.AccountRepo, repos.UnitOfWork, options...)

	journalOptions := []JournalServiceOption{WithPeriodGate(container.FiscalYear)}
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	if base.Clock != nil {
		journalOptions = append(journalOptions, WithJournalClock(base.Clock))
	}
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Account,
		repos.UnitOfWork,
		journalOptions...,
	)

	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.AccountRepo,
		container.Journal,
		repos.UnitOfWork,
		DefaultAccounts{
			Receivables: cfg.Accounts.Receivables,
			Payables:    cfg.Accounts.Payables,
			TaxPayable:  cfg.Accounts.TaxPayable,
			Revenue:     cfg.Accounts.Revenue,
			Expense:     cfg.Accounts.Expense,
		},
		options...,
	)

	return container
}
