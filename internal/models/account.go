// Package models defines data structures for pocketledger
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType categorizes an account.
type AccountType string

const (
	AccountTypeCurrent        AccountType = "current"
	AccountTypeSavings        AccountType = "savings"
	AccountTypeCredit         AccountType = "credit"
	AccountTypeLoan           AccountType = "loan"
	AccountTypeBNPL           AccountType = "bnpl"
	AccountTypeFamilyLoan     AccountType = "family_loan"
	AccountTypeDebtCollection AccountType = "debt_collection"
	AccountTypePrepaid        AccountType = "prepaid"
)

// validAccountTypes lists all accepted account types.
var validAccountTypes = map[AccountType]bool{
	AccountTypeCurrent:        true,
	AccountTypeSavings:        true,
	AccountTypeCredit:         true,
	AccountTypeLoan:           true,
	AccountTypeBNPL:           true,
	AccountTypeFamilyLoan:     true,
	AccountTypeDebtCollection: true,
	AccountTypePrepaid:        true,
}

// ValidAccountType returns true if t is a valid account type.
func ValidAccountType(t AccountType) bool {
	return validAccountTypes[t]
}

// IsDebtType returns true for account types that represent money owed.
// Debt balances count against net worth.
func IsDebtType(t AccountType) bool {
	switch t {
	case AccountTypeCredit, AccountTypeLoan, AccountTypeBNPL, AccountTypeDebtCollection:
		return true
	default:
		return false
	}
}

// Account represents a single tracked account. Balance is mutated by
// transaction application elsewhere; the cascade leaves counterparty
// balances untouched.
type Account struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Type-specific attributes. Nil when not applicable.
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
	OriginalAmount *decimal.Decimal `json:"original_amount,omitempty"`
	TermMonths     *int             `json:"term_months,omitempty"`
	StartDate      *time.Time       `json:"start_date,omitempty"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment,omitempty"`
	Provider       string           `json:"provider,omitempty"`
}
