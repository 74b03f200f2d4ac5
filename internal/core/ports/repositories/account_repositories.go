package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique dotted code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByType retrieves every account of the given type, ordered by code.
	FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// FindActiveAccounts retrieves every active account, ordered by code.
	FindActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// FindChildAccounts retrieves the direct children of parentID, ordered by code.
	FindChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// SearchAccounts matches query case-insensitively against code and name.
	SearchAccounts(ctx context.Context, query string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken code yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount writes account if its Version matches the stored one and
	// increments account.Version on success.
	UpdateAccount(ctx context.Context, account *domain.Account) error

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
