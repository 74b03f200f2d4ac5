package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type accountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var found *domain.Account
	err := r.store.read(ctx, func(d *dataset) error {
		acc, ok := d.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		c := acc.Clone()
		found = &c
		return nil
	})
	return found, err
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var found *domain.Account
	err := r.store.read(ctx, func(d *dataset) error {
		for _, acc := range d.accounts {
			if acc.Code == code {
				c := acc.Clone()
				found = &c
				return nil
			}
		}
		return fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
	})
	return found, err
}

func (r *accountRepository) filter(ctx context.Context, keep func(domain.Account) bool) ([]domain.Account, error) {
	result := make([]domain.Account, 0)
	err := r.store.read(ctx, func(d *dataset) error {
		for _, acc := range d.accounts {
			if keep(acc) {
				result = append(result, acc.Clone())
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, err
}

func (r *accountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	return r.filter(ctx, func(a domain.Account) bool { return a.AccountType == accountType })
}

func (r *accountRepository) FindActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.filter(ctx, func(a domain.Account) bool { return a.IsActive })
}

func (r *accountRepository) FindChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	return r.filter(ctx, func(a domain.Account) bool {
		return a.ParentAccountID != nil && *a.ParentAccountID == parentID
	})
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.filter(ctx, func(domain.Account) bool { return true })
}

func (r *accountRepository) SearchAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	q := strings.ToLower(query)
	return r.filter(ctx, func(a domain.Account) bool {
		return strings.Contains(strings.ToLower(a.Code), q) || strings.Contains(strings.ToLower(a.Name), q)
	})
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, exists := d.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
		for _, acc := range d.accounts {
			if acc.Code == account.Code {
				return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
			}
		}
		d.accounts[account.AccountID] = account.Clone()
		return nil
	})
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	return r.store.write(ctx, func(d *dataset) error {
		stored, ok := d.accounts[account.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
		}
		if stored.Version != account.Version {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrConcurrentModification)
		}
		for id, acc := range d.accounts {
			if id != account.AccountID && acc.Code == account.Code {
				return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
			}
		}
		account.Version++
		d.accounts[account.AccountID] = account.Clone()
		return nil
	})
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return r.store.write(ctx, func(d *dataset) error {
		if _, ok := d.accounts[accountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		delete(d.accounts, accountID)
		return nil
	})
}
