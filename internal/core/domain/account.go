package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// accountCodePattern matches dotted hierarchy codes like "1.1.01".
var accountCodePattern = regexp.MustCompile(`^[0-9A-Za-z]+(\.[0-9A-Za-z]+)*$`)

// ValidAccountCode reports whether code is a well formed dotted account code.
func ValidAccountCode(code string) bool {
	return accountCodePattern.MatchString(code)
}

// Account is a node in the chart of accounts.
// Children are not stored on the node; they are looked up by ParentAccountID.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique dotted code, e.g. "1.1.01"
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"` // Nullable, self-referencing
	Depth           int             `json:"depth"`           // 1 for roots
	Balance         decimal.Decimal `json:"balance"`
	IsActive        bool            `json:"isActive"`
	Version         int64           `json:"version"`
	AuditFields
}

// IsRoot reports whether the account has no parent.
func (a *Account) IsRoot() bool {
	return a.ParentAccountID == nil
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	c := a
	if a.ParentAccountID != nil {
		p := *a.ParentAccountID
		c.ParentAccountID = &p
	}
	return c
}

// AccountNode is an account with its children resolved, used to render the chart as a tree.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// BuildAccountTree arranges a flat list of accounts into a forest.
// Accounts whose parent is missing from the list are treated as roots.
// Siblings keep the order they had in accounts.
func BuildAccountTree(accounts []Account) []*AccountNode {
	nodes := make(map[string]*AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &AccountNode{Account: acc}
	}

	roots := make([]*AccountNode, 0)
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if acc.ParentAccountID != nil {
			if parent, ok := nodes[*acc.ParentAccountID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
