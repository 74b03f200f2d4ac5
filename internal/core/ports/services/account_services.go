package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its dotted code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves the whole chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByType retrieves accounts of one type.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// ListActiveAccounts retrieves accounts that can still receive postings.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// GetChildAccounts retrieves the direct children of an account.
	GetChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error)

	// GetAccountTree returns the chart of accounts as a forest.
	GetAccountTree(ctx context.Context) ([]*domain.AccountNode, error)

	// SearchAccounts matches query against code and name.
	SearchAccounts(ctx context.Context, query string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. It is not a deletion.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// DeleteAccount removes a leaf account whose balance is zero.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountPostingSvc applies posting amounts to account balances using the sign rule.
// Callers run these inside a unit of work.
type AccountPostingSvc interface {
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error)
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountPostingSvc
}
