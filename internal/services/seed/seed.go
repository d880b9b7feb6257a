// Package seed populates an empty ledger with a small demo dataset so the
// server is explorable on first run.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Seeder writes demo data through the normal service layer so derived rows
// (transfer legs in particular) are created by the same code paths user
// requests go through.
type Seeder struct {
	storage      interfaces.StorageManager
	accounts     interfaces.AccountService
	transactions interfaces.TransactionService
	plans        interfaces.PlanService
	catalog      interfaces.CatalogService
	logger       *common.Logger
}

// NewSeeder creates a new demo-data seeder
func NewSeeder(
	storage interfaces.StorageManager,
	accounts interfaces.AccountService,
	transactions interfaces.TransactionService,
	plans interfaces.PlanService,
	catalog interfaces.CatalogService,
	logger *common.Logger,
) *Seeder {
	return &Seeder{
		storage:      storage,
		accounts:     accounts,
		transactions: transactions,
		plans:        plans,
		catalog:      catalog,
		logger:       logger,
	}
}

// Run seeds the demo dataset when the ledger has no accounts yet. A ledger
// with any existing account is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.storage.Ledger().ListAccounts(ctx, common.ResolveUserID(ctx))
	if err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug().Int("accounts", len(existing)).Msg("Ledger not empty, skipping demo seed")
		return nil
	}

	s.logger.Info().Msg("Seeding demo data")

	current, err := s.accounts.CreateAccount(ctx, models.Account{
		Name:    "Current Account",
		Type:    models.AccountTypeCurrent,
		Balance: dec("2450.00"),
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	savings, err := s.accounts.CreateAccount(ctx, models.Account{
		Name:    "Rainy Day Savings",
		Type:    models.AccountTypeSavings,
		Balance: dec("8200.00"),
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	golf, err := s.accounts.CreateAccount(ctx, models.Account{
		Name:    "Golf Club Bar Card",
		Type:    models.AccountTypePrepaid,
		Balance: dec("84.50"),
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	limit := dec("3000.00")
	card, err := s.accounts.CreateAccount(ctx, models.Account{
		Name:        "Rewards Credit Card",
		Type:        models.AccountTypeCredit,
		Balance:     dec("-640.25"),
		CreditLimit: &limit,
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	groceries, err := s.catalog.AddCategory(ctx, models.Category{Name: "Groceries"})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	eatingOut, err := s.catalog.AddCategory(ctx, models.Category{Name: "Eating Out"})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if _, err := s.catalog.AddBudget(ctx, models.Budget{
		CategoryID:   groceries.ID,
		MonthlyLimit: dec("400.00"),
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	now := time.Now()
	seedTxs := []models.Transaction{
		{AccountID: current.ID, CategoryID: groceries.ID, Amount: dec("-62.40"), Description: "Weekly shop", Date: now.AddDate(0, 0, -6)},
		{AccountID: current.ID, CategoryID: eatingOut.ID, Amount: dec("-28.90"), Description: "Pizza night", Date: now.AddDate(0, 0, -4)},
		{AccountID: current.ID, Amount: dec("2100.00"), Description: "Salary", Date: now.AddDate(0, 0, -10)},
		{AccountID: card.ID, CategoryID: groceries.ID, Amount: dec("-45.10"), Description: "Corner shop", Date: now.AddDate(0, 0, -2)},
		{AccountID: golf.ID, Amount: dec("-15.50"), Description: "Drinks", Date: now.AddDate(0, 0, -1)},
		{AccountID: current.ID, Amount: dec("-55.00"), Description: "Gym membership", Date: now.AddDate(0, 0, 12), Scheduled: true, Recurrence: models.RecurrenceMonthly},
	}
	for _, tx := range seedTxs {
		if _, err := s.transactions.AddTransaction(ctx, tx); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	if _, err := s.transactions.AddTransfer(ctx, interfaces.TransferRequest{
		SourceID:      current.ID,
		DestinationID: golf.ID,
		Amount:        dec("100.00"),
		Date:          now.AddDate(0, 0, -3),
		Type:          models.TransferTypeTopUp,
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if _, err := s.transactions.AddTransfer(ctx, interfaces.TransferRequest{
		SourceID:      current.ID,
		DestinationID: savings.ID,
		Amount:        dec("250.00"),
		Date:          now.AddDate(0, 0, -8),
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if _, err := s.plans.AddBNPLPlan(ctx, models.BNPLPlan{
		AccountID:         card.ID,
		Provider:          "Klarna",
		Description:       "Standing desk",
		TotalAmount:       dec("360.00"),
		InstallmentAmount: dec("120.00"),
		Installments:      3,
		InstallmentsPaid:  1,
		NextDueDate:       now.AddDate(0, 0, 14),
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if _, err := s.plans.AddArrangement(ctx, models.FlexibleArrangement{
		AccountID:       current.ID,
		Kind:            models.ArrangementFamilyLoan,
		Counterparty:    "Mum",
		TotalAmount:     dec("500.00"),
		MonthlyPayment:  dec("50.00"),
		NextPaymentDate: now.AddDate(0, 0, 20),
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if _, err := s.catalog.AddEvent(ctx, models.Event{
		Name:   "Cornwall holiday",
		Date:   now.AddDate(0, 2, 0),
		Budget: dec("900.00"),
	}); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	s.logger.Info().Msg("Demo data seeded")
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
