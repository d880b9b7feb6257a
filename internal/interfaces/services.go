package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcallahan/pocketledger/internal/models"
)

// AccountService manages accounts and the deletion cascade.
type AccountService interface {
	CreateAccount(ctx context.Context, account models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// UpdateAccount replaces the stored record with the same id. Returns
	// models.ErrNotFound (wrapped) when the id is unknown.
	UpdateAccount(ctx context.Context, account models.Account) (*models.Account, error)

	// GetDeletionImpact reports what deleting the account would remove.
	// Read-only; safe to call repeatedly.
	GetDeletionImpact(ctx context.Context, id string) (*models.DeletionImpact, error)

	// DeleteAccount removes the account and everything that depends on it,
	// including paired transfer legs in other accounts. Idempotent in
	// effect: a second call on the same id finds no rows and is a no-op.
	DeleteAccount(ctx context.Context, id string) error
}

// TransferRequest describes a transfer to create. The service records the
// Transfer and synthesizes its two ledger legs.
type TransferRequest struct {
	SourceID      string              `json:"source_id"`
	DestinationID string              `json:"destination_id"`
	Amount        decimal.Decimal     `json:"amount"`
	Date          time.Time           `json:"date"`
	Description   string              `json:"description"`
	Type          models.TransferType `json:"type"`
}

// TransactionService manages ledger entries and transfers.
type TransactionService interface {
	AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, update models.Transaction) (*models.Transaction, error)
	RemoveTransaction(ctx context.Context, id string) error
	// ListTransactions returns all entries, or only one account's when
	// accountID is non-empty.
	ListTransactions(ctx context.Context, accountID string) ([]models.Transaction, error)

	AddTransfer(ctx context.Context, req TransferRequest) (*models.Transfer, error)
	ListTransfers(ctx context.Context) ([]models.Transfer, error)
}

// PlanService manages BNPL plans and flexible arrangements.
type PlanService interface {
	AddBNPLPlan(ctx context.Context, plan models.BNPLPlan) (*models.BNPLPlan, error)
	ListBNPLPlans(ctx context.Context) ([]models.BNPLPlan, error)
	RecordInstallmentPaid(ctx context.Context, planID string) (*models.BNPLPlan, error)

	AddArrangement(ctx context.Context, arr models.FlexibleArrangement) (*models.FlexibleArrangement, error)
	ListArrangements(ctx context.Context) ([]models.FlexibleArrangement, error)
	RecordArrangementPayment(ctx context.Context, arrangementID string, amount decimal.Decimal) (*models.FlexibleArrangement, error)
}

// CatalogService manages categories, budgets, and events.
type CatalogService interface {
	AddCategory(ctx context.Context, cat models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RemoveCategory(ctx context.Context, id string) error

	AddBudget(ctx context.Context, budget models.Budget) (*models.Budget, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)
	RemoveBudget(ctx context.Context, id string) error

	AddEvent(ctx context.Context, event models.Event) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	RemoveEvent(ctx context.Context, id string) error
}

// SummaryService computes derived views over the ledger.
type SummaryService interface {
	NetWorth(ctx context.Context) (*models.NetWorthSummary, error)
	MonthlySpend(ctx context.Context, year int, month time.Month) (*models.MonthlySpendSummary, error)
	UpcomingPayments(ctx context.Context) ([]models.UpcomingPayment, error)
	// RenderSpendChart renders a PNG bar chart of total spend for the last
	// `months` calendar months.
	RenderSpendChart(ctx context.Context, months int) ([]byte, error)
}
