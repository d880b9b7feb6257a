// Package interfaces defines service contracts for pocketledger
package interfaces

import (
	"context"

	"github.com/jcallahan/pocketledger/internal/models"
)

// StorageManager coordinates storage backends.
type StorageManager interface {
	Ledger() LedgerStore
	Close() error
}

// LedgerStore owns every user-scoped collection: accounts, transactions,
// transfers, BNPL plans, flexible arrangements, categories, budgets, events.
// All lookups are scoped by user id. Gets return models.ErrNotFound (wrapped)
// when the id does not exist.
//
// Accounts are never deleted directly; ApplyCascade is the only way an
// account record leaves the store.
type LedgerStore interface {
	// Accounts
	GetAccount(ctx context.Context, userID, id string) (*models.Account, error)
	SaveAccount(ctx context.Context, account *models.Account) error
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)

	// Transactions
	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// Transfers
	GetTransfer(ctx context.Context, userID, id string) (*models.Transfer, error)
	SaveTransfer(ctx context.Context, tr *models.Transfer) error
	DeleteTransfer(ctx context.Context, userID, id string) error
	ListTransfers(ctx context.Context, userID string) ([]models.Transfer, error)

	// BNPL plans
	GetBNPLPlan(ctx context.Context, userID, id string) (*models.BNPLPlan, error)
	SaveBNPLPlan(ctx context.Context, plan *models.BNPLPlan) error
	ListBNPLPlans(ctx context.Context, userID string) ([]models.BNPLPlan, error)

	// Flexible arrangements
	GetArrangement(ctx context.Context, userID, id string) (*models.FlexibleArrangement, error)
	SaveArrangement(ctx context.Context, arr *models.FlexibleArrangement) error
	ListArrangements(ctx context.Context, userID string) ([]models.FlexibleArrangement, error)

	// Categories
	SaveCategory(ctx context.Context, cat *models.Category) error
	DeleteCategory(ctx context.Context, userID, id string) error
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)

	// Budgets
	SaveBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, userID, id string) error
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)

	// Events
	SaveEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, userID, id string) error
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)

	// ApplyCascade deletes every record named by the plan plus the account
	// itself in a single atomic batch, in fixed order: matched legs,
	// transfers, direct transactions, plans, arrangements, account.
	// A crash mid-sequence must not leave dangling references.
	ApplyCascade(ctx context.Context, userID string, plan models.CascadePlan) error

	Close() error
}
