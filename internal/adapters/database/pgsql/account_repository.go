package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, parent_account_id, depth, balance, is_active, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row scanner) (domain.Account, error) {
	var acc domain.Account
	var accountType string
	err := row.Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&accountType,
		&acc.ParentAccountID,
		&acc.Depth,
		&acc.Balance,
		&acc.IsActive,
		&acc.Version,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	acc.AccountType = domain.AccountType(accountType)
	return acc, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where, what string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	acc, err := scanAccount(r.db(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, what)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) list(ctx context.Context, where string, args ...any) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY code`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "accounts")
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "accounts")
		}
		accounts = append(accounts, acc)
	}
	return accounts, mapError(rows.Err(), "accounts")
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, `account_id = $1`, "account "+accountID, accountID)
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, `code = $1`, "account code "+code, code)
}

func (r *PgxAccountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	return r.list(ctx, `account_type = $1`, string(accountType))
}

func (r *PgxAccountRepository) FindActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, `is_active`)
}

func (r *PgxAccountRepository) FindChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	return r.list(ctx, `parent_account_id = $1`, parentID)
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, "")
}

// SearchAccounts matches query as a case-insensitive substring of code or name.
func (r *PgxAccountRepository) SearchAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.list(ctx, `code ILIKE $1 OR name ILIKE $1`, pattern)
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		account.AccountID,
		account.Code,
		account.Name,
		string(account.AccountType),
		account.ParentAccountID,
		account.Depth,
		account.Balance,
		account.IsActive,
		account.Version,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	return mapError(err, "account "+account.Code)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET code = $3, name = $4, account_type = $5, balance = $6, is_active = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE account_id = $1 AND version = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		account.AccountID,
		account.Version,
		account.Code,
		account.Name,
		string(account.AccountType),
		account.Balance,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "account "+account.AccountID)
	}
	if err := r.checkVersioned(ctx, tag, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, account.AccountID, "account "+account.AccountID); err != nil {
		return err
	}
	account.Version++
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return mapError(err, "account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "account "+accountID)
	}
	return nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

