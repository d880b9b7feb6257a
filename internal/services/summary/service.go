// Package summary computes derived views over the ledger: net worth,
// monthly spend against budgets, and upcoming payments.
package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.SummaryService = (*Service)(nil)

// Service implements SummaryService
type Service struct {
	storage      interfaces.StorageManager
	upcomingDays int
	logger       *common.Logger
}

// NewService creates a new summary service
func NewService(storage interfaces.StorageManager, cfg common.LedgerConfig, logger *common.Logger) *Service {
	days := cfg.UpcomingWindowDays
	if days <= 0 {
		days = 30
	}
	return &Service{
		storage:      storage,
		upcomingDays: days,
		logger:       logger,
	}
}

// formatAmount renders a decimal as a currency string (e.g. "£1,234.50").
func formatAmount(d decimal.Decimal, currency string) string {
	minor := d.Shift(2).Round(0).IntPart()
	return money.New(minor, currency).Display()
}

// NetWorth aggregates balances across all accounts. Debt-type account
// balances count against the total by magnitude.
func (s *Service) NetWorth(ctx context.Context) (*models.NetWorthSummary, error) {
	accounts, err := s.storage.Ledger().ListAccounts(ctx, common.ResolveUserID(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to compute net worth: %w", err)
	}

	currency := common.ResolveCurrency(ctx)
	assets := decimal.Zero
	debts := decimal.Zero
	byType := make(map[models.AccountType]decimal.Decimal)

	for _, acc := range accounts {
		byType[acc.Type] = byType[acc.Type].Add(acc.Balance)
		if models.IsDebtType(acc.Type) {
			debts = debts.Add(acc.Balance.Abs())
		} else {
			assets = assets.Add(acc.Balance)
		}
	}

	netWorth := assets.Sub(debts)
	return &models.NetWorthSummary{
		Assets:            assets,
		Debts:             debts,
		NetWorth:          netWorth,
		ByType:            byType,
		AccountCount:      len(accounts),
		FormattedNetWorth: formatAmount(netWorth, currency),
		Currency:          currency,
		AsOf:              time.Now(),
	}, nil
}

// isTransferLeg filters ledger rows created by transfer synthesis out of
// spend figures, using the same wording convention the cascade re-pairs on.
func isTransferLeg(tx models.Transaction) bool {
	desc := strings.ToLower(tx.Description)
	return strings.Contains(desc, "transfer") || strings.Contains(desc, "top up")
}

// MonthlySpend reports outflows for one calendar month split by category,
// compared against budget limits where they exist. Transfer legs and
// scheduled (not yet occurred) entries are excluded.
func (s *Service) MonthlySpend(ctx context.Context, year int, month time.Month) (*models.MonthlySpendSummary, error) {
	userID := common.ResolveUserID(ctx)
	ledger := s.storage.Ledger()

	txs, err := ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly spend: %w", err)
	}
	categories, err := ledger.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly spend: %w", err)
	}
	budgets, err := ledger.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly spend: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	limits := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		limits[b.CategoryID] = b.MonthlyLimit
	}

	total := decimal.Zero
	spentBy := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsOutflow() || tx.Scheduled || isTransferLeg(tx) {
			continue
		}
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		amount := tx.Amount.Abs()
		total = total.Add(amount)
		spentBy[tx.CategoryID] = spentBy[tx.CategoryID].Add(amount)
	}

	result := make([]models.CategorySpend, 0, len(spentBy))
	for catID, spent := range spentBy {
		cs := models.CategorySpend{
			CategoryID:   catID,
			CategoryName: names[catID],
			Spent:        spent,
		}
		if cs.CategoryName == "" {
			cs.CategoryName = "Uncategorized"
		}
		if limit, ok := limits[catID]; ok {
			l := limit
			cs.Limit = &l
			cs.OverBudget = spent.GreaterThan(limit)
		}
		result = append(result, cs)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Spent.GreaterThan(result[j].Spent)
	})

	return &models.MonthlySpendSummary{
		Year:           year,
		Month:          month,
		TotalSpent:     total,
		FormattedTotal: formatAmount(total, common.ResolveCurrency(ctx)),
		Categories:     result,
	}, nil
}

// UpcomingPayments lists payments expected within the look-ahead window:
// scheduled transactions, BNPL installments coming due, and arrangement
// payments. Sorted by due date.
func (s *Service) UpcomingPayments(ctx context.Context) ([]models.UpcomingPayment, error) {
	userID := common.ResolveUserID(ctx)
	ledger := s.storage.Ledger()

	now := time.Now()
	horizon := now.AddDate(0, 0, s.upcomingDays)
	inWindow := func(t time.Time) bool {
		return !t.Before(now.Truncate(24*time.Hour)) && !t.After(horizon)
	}

	var payments []models.UpcomingPayment

	txs, err := ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}
	for _, tx := range txs {
		if tx.Scheduled && tx.IsOutflow() && inWindow(tx.Date) {
			payments = append(payments, models.UpcomingPayment{
				Source:      models.PaymentSourceScheduled,
				AccountID:   tx.AccountID,
				Description: tx.Description,
				Amount:      tx.Amount.Abs(),
				DueDate:     tx.Date,
			})
		}
	}

	plans, err := ledger.ListBNPLPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}
	for _, p := range plans {
		if p.InstallmentsPaid < p.Installments && inWindow(p.NextDueDate) {
			payments = append(payments, models.UpcomingPayment{
				Source:      models.PaymentSourceBNPL,
				AccountID:   p.AccountID,
				Description: fmt.Sprintf("%s installment %d of %d", p.Provider, p.InstallmentsPaid+1, p.Installments),
				Amount:      p.InstallmentAmount,
				DueDate:     p.NextDueDate,
			})
		}
	}

	arrs, err := ledger.ListArrangements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}
	for _, a := range arrs {
		if a.RemainingAmount.IsPositive() && inWindow(a.NextPaymentDate) {
			amount := a.MonthlyPayment
			if amount.GreaterThan(a.RemainingAmount) {
				amount = a.RemainingAmount
			}
			payments = append(payments, models.UpcomingPayment{
				Source:      models.PaymentSourceArrangement,
				AccountID:   a.AccountID,
				Description: fmt.Sprintf("Payment to %s", a.Counterparty),
				Amount:      amount,
				DueDate:     a.NextPaymentDate,
			})
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].DueDate.Before(payments[j].DueDate)
	})
	return payments, nil
}

// monthlySpendSeries computes total spend for each of the last `months`
// calendar months, oldest first.
func (s *Service) monthlySpendSeries(ctx context.Context, months int) ([]models.MonthSpendPoint, error) {
	userID := common.ResolveUserID(ctx)
	txs, err := s.storage.Ledger().ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	points := make([]models.MonthSpendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		spent := decimal.Zero
		for _, tx := range txs {
			if !tx.IsOutflow() || tx.Scheduled || isTransferLeg(tx) {
				continue
			}
			if tx.Date.Year() == m.Year() && tx.Date.Month() == m.Month() {
				spent = spent.Add(tx.Amount.Abs())
			}
		}
		points = append(points, models.MonthSpendPoint{Month: m, Spent: spent})
	}
	return points, nil
}
