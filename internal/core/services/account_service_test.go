package services_test

import (
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func (suite *LedgerTestSuite) TestCreateAccountHierarchy() {
	assets := suite.createAccount("1", "Assets", domain.Asset, nil)
	current := suite.createAccount("1.1", "Current assets", domain.Asset, assets)
	cash := suite.createAccount("1.1.01", "Cash", domain.Asset, current)

	suite.Equal(1, assets.Depth)
	suite.Equal(2, current.Depth)
	suite.Equal(3, cash.Depth)
	suite.Equal(current.AccountID, *cash.ParentAccountID)
	suite.True(cash.IsActive)
	suite.Equal(int64(1), cash.Version)
	suite.Equal(testUser, cash.CreatedBy)

	children, err := suite.svc.Account.GetChildAccounts(suite.ctx, assets.AccountID)
	suite.Require().NoError(err)
	suite.Require().Len(children, 1)
	suite.Equal(current.AccountID, children[0].AccountID)

	tree, err := suite.svc.Account.GetAccountTree(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(tree, 1)
	suite.Equal("1.1.01", tree[0].Children[0].Children[0].Code)
}

func (suite *LedgerTestSuite) TestCreateAccountRejects() {
	suite.createAccount("1.1.01", "Cash", domain.Asset, nil)

	tests := []struct {
		name    string
		req     dto.CreateAccountRequest
		wantErr error
	}{
		{"duplicate code", dto.CreateAccountRequest{Code: "1.1.01", Name: "Other", AccountType: domain.Asset}, apperrors.ErrDuplicate},
		{"malformed code", dto.CreateAccountRequest{Code: "1..2", Name: "Bad", AccountType: domain.Asset}, domain.ErrInvalidAccountCode},
		{"unknown type", dto.CreateAccountRequest{Code: "9", Name: "Bad", AccountType: "REVENUE"}, domain.ErrInvalidAccountType},
		{"blank name", dto.CreateAccountRequest{Code: "9", Name: "  ", AccountType: domain.Asset}, domain.ErrAccountNameMissing},
		{"unknown parent", dto.CreateAccountRequest{Code: "9", Name: "Orphan", AccountType: domain.Asset, ParentAccountID: strPtr("nope")}, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.svc.Account.CreateAccount(suite.ctx, tt.req, testUser)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *LedgerTestSuite) TestSignRuleRoundTrip() {
	types := []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense}
	for i, accountType := range types {
		account := suite.createAccount(string(rune('1'+i)), string(accountType), accountType, nil)

		_, err := suite.svc.Account.Debit(suite.ctx, account.AccountID, dec("37.45"), testUser)
		suite.Require().NoError(err)
		after, err := suite.svc.Account.Credit(suite.ctx, account.AccountID, dec("37.45"), testUser)
		suite.Require().NoError(err)

		suite.True(after.Balance.IsZero(), "%s balance %s", accountType, after.Balance)
	}
}

func (suite *LedgerTestSuite) TestDebitNegativeRejected() {
	cash := suite.createAccount("1.1.01", "Cash", domain.Asset, nil)
	_, err := suite.svc.Account.Debit(suite.ctx, cash.AccountID, dec("-1"), testUser)
	suite.ErrorIs(err, domain.ErrNegativeAmount)
	suite.assertBalance("0", cash)
}

func (suite *LedgerTestSuite) TestDeleteAccountHierarchyIntegrity() {
	parent := suite.createAccount("1", "Assets", domain.Asset, nil)
	child := suite.createAccount("1.1", "Cash", domain.Asset, parent)

	err := suite.svc.Account.DeleteAccount(suite.ctx, parent.AccountID)
	suite.ErrorIs(err, domain.ErrAccountHasChildren)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.svc.Account.Debit(suite.ctx, child.AccountID, dec("1"), testUser)
	suite.Require().NoError(err)
	suite.ErrorIs(suite.svc.Account.DeleteAccount(suite.ctx, child.AccountID), domain.ErrAccountHasBalance)

	_, err = suite.svc.Account.Credit(suite.ctx, child.AccountID, dec("1"), testUser)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.svc.Account.DeleteAccount(suite.ctx, child.AccountID))
	suite.Require().NoError(suite.svc.Account.DeleteAccount(suite.ctx, parent.AccountID))

	_, err = suite.svc.Account.GetAccountByID(suite.ctx, parent.AccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestUpdateAccount() {
	cash := suite.createAccount("1.1.01", "Cash", domain.Asset, nil)

	name := "Petty cash"
	code := "1.1.09"
	updated, err := suite.svc.Account.UpdateAccount(suite.ctx, cash.AccountID, dto.UpdateAccountRequest{Name: &name, Code: &code}, testUser)
	suite.Require().NoError(err)
	suite.Equal("Petty cash", updated.Name)
	suite.Equal("1.1.09", updated.Code)
	suite.Equal(int64(2), updated.Version)

	_, err = suite.svc.Account.Debit(suite.ctx, cash.AccountID, dec("5"), testUser)
	suite.Require().NoError(err)

	income := domain.Income
	_, err = suite.svc.Account.UpdateAccount(suite.ctx, cash.AccountID, dto.UpdateAccountRequest{AccountType: &income}, testUser)
	suite.ErrorIs(err, domain.ErrAccountHasBalance)
}

func (suite *LedgerTestSuite) TestQueries() {
	cash := suite.createAccount("1.1.01", "Cash", domain.Asset, nil)
	suite.createAccount("1.1.02", "Receivables", domain.Asset, nil)
	suite.createAccount("4.1.01", "Sales", domain.Income, nil)
	suite.Require().NoError(suite.svc.Account.DeactivateAccount(suite.ctx, cash.AccountID, testUser))
	suite.Require().NoError(suite.svc.Account.DeactivateAccount(suite.ctx, cash.AccountID, testUser))

	byCode, err := suite.svc.Account.GetAccountByCode(suite.ctx, "4.1.01")
	suite.Require().NoError(err)
	suite.Equal("Sales", byCode.Name)

	assets, err := suite.svc.Account.ListAccountsByType(suite.ctx, domain.Asset)
	suite.Require().NoError(err)
	suite.Len(assets, 2)

	active, err := suite.svc.Account.ListActiveAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(active, 2)

	found, err := suite.svc.Account.SearchAccounts(suite.ctx, "recEIV")
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal("1.1.02", found[0].Code)

	found, err = suite.svc.Account.SearchAccounts(suite.ctx, "1.1")
	suite.Require().NoError(err)
	suite.Len(found, 2)
}
