package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetWorthSummary aggregates balances across all accounts. Assets and Debts
// are both reported as positive magnitudes; NetWorth = Assets - Debts.
type NetWorthSummary struct {
	Assets            decimal.Decimal            `json:"assets"`
	Debts             decimal.Decimal            `json:"debts"`
	NetWorth          decimal.Decimal            `json:"net_worth"`
	ByType            map[AccountType]decimal.Decimal `json:"by_type"`
	AccountCount      int                        `json:"account_count"`
	FormattedNetWorth string                     `json:"formatted_net_worth"`
	Currency          string                     `json:"currency"`
	AsOf              time.Time                  `json:"as_of"`
}

// CategorySpend is one category's spend within a month, against its budget
// limit when one exists.
type CategorySpend struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Spent        decimal.Decimal `json:"spent"`
	Limit        *decimal.Decimal `json:"limit,omitempty"`
	OverBudget   bool            `json:"over_budget"`
}

// MonthlySpendSummary reports outflows for one calendar month, split by
// category. Transfer legs are excluded so moving money between accounts
// does not count as spending.
type MonthlySpendSummary struct {
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	FormattedTotal string          `json:"formatted_total"`
	Categories     []CategorySpend `json:"categories"`
}

// UpcomingPaymentSource identifies where an upcoming payment comes from.
type UpcomingPaymentSource string

const (
	PaymentSourceScheduled   UpcomingPaymentSource = "scheduled_transaction"
	PaymentSourceBNPL        UpcomingPaymentSource = "bnpl_plan"
	PaymentSourceArrangement UpcomingPaymentSource = "arrangement"
)

// UpcomingPayment is a payment expected within the look-ahead window.
type UpcomingPayment struct {
	Source      UpcomingPaymentSource `json:"source"`
	AccountID   string                `json:"account_id"`
	Description string                `json:"description"`
	Amount      decimal.Decimal       `json:"amount"`
	DueDate     time.Time             `json:"due_date"`
}

// MonthSpendPoint is one month's total spend, used for chart rendering.
type MonthSpendPoint struct {
	Month time.Time       `json:"month"`
	Spent decimal.Decimal `json:"spent"`
}
