package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	uow         portsrepo.UnitOfWork
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, uow portsrepo.UnitOfWork, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		uow:         uow,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	if !domain.ValidAccountCode(code) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountCode, req.Code)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, req.AccountType)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrAccountNameMissing
	}

	now := s.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: req.AccountType,
		Depth:       1,
		Balance:     decimal.Zero,
		IsActive:    true,
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		if req.ParentAccountID != nil && *req.ParentAccountID != "" {
			parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
			if err != nil {
				return fmt.Errorf("invalid parent account: %w", err)
			}
			parentID := parent.AccountID
			account.ParentAccountID = &parentID
			account.Depth = parent.Depth + 1
		}

		if _, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		return s.accountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find account by code", slog.String("code", code))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, accountType)
	}
	accounts, err := s.accountRepo.FindAccountsByType(ctx, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts by type", slog.String("account_type", string(accountType)))
		return nil, fmt.Errorf("failed to list accounts of type %s: %w", accountType, err)
	}
	return accounts, nil
}

func (s *accountService) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindActiveAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active accounts")
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) GetChildAccounts(ctx context.Context, parentID string) ([]domain.Account, error) {
	if _, err := s.GetAccountByID(ctx, parentID); err != nil {
		return nil, err
	}
	children, err := s.accountRepo.FindChildAccounts(ctx, parentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list child accounts", slog.String("parent_id", parentID))
		return nil, err
	}
	return children, nil
}

func (s *accountService) GetAccountTree(ctx context.Context) ([]*domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildAccountTree(accounts), nil
}

func (s *accountService) SearchAccounts(ctx context.Context, query string) ([]domain.Account, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListAccounts(ctx)
	}
	accounts, err := s.accountRepo.SearchAccounts(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to search accounts", slog.String("query", query))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrAccountNameMissing
			}
			account.Name = name
		}

		if req.Code != nil && *req.Code != account.Code {
			if !account.Balance.IsZero() {
				return fmt.Errorf("%w: code cannot change", domain.ErrAccountHasBalance)
			}
			if !domain.ValidAccountCode(*req.Code) {
				return fmt.Errorf("%w: %q", domain.ErrInvalidAccountCode, *req.Code)
			}
			account.Code = *req.Code
		}

		if req.AccountType != nil && *req.AccountType != account.AccountType {
			if !account.Balance.IsZero() {
				return fmt.Errorf("%w: type cannot change", domain.ErrAccountHasBalance)
			}
			if !req.AccountType.IsValid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, *req.AccountType)
			}
			account.AccountType = *req.AccountType
		}

		account.Touch(userID, s.Now())
		return s.accountRepo.UpdateAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return nil
		}
		account.IsActive = false
		account.Touch(userID, s.Now())
		return s.accountRepo.UpdateAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		children, err := s.accountRepo.FindChildAccounts(ctx, accountID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return fmt.Errorf("%w: %s has %d", domain.ErrAccountHasChildren, account.Code, len(children))
		}
		if !account.Balance.IsZero() {
			return fmt.Errorf("%w: %s balance is %s", domain.ErrAccountHasBalance, account.Code, account.Balance)
		}
		return s.accountRepo.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	return s.applyPosting(ctx, accountID, accounting.Debit, amount, userID)
}

func (s *accountService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	return s.applyPosting(ctx, accountID, accounting.Credit, amount, userID)
}

// applyPosting moves the balance of one account by the signed amount.
func (s *accountService) applyPosting(ctx context.Context, accountID string, side accounting.Side, amount decimal.Decimal, userID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		delta, err := accounting.SignedAmount(account.AccountType, side, amount)
		if err != nil {
			return err
		}
		account.Balance = account.Balance.Add(delta)
		account.Touch(userID, s.Now())
		return s.accountRepo.UpdateAccount(ctx, account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to apply posting to account",
			slog.String("account_id", accountID),
			slog.String("side", string(side)),
			slog.String("amount", amount.String()))
		return nil, err
	}

	s.LogDebug(ctx, "Posting applied",
		slog.String("account_id", accountID),
		slog.String("side", string(side)),
		slog.String("balance", account.Balance.String()))
	return account, nil
}
