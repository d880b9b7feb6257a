package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceRule describes how a scheduled transaction repeats.
type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = ""
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
	RecurrenceYearly  RecurrenceRule = "yearly"
)

// validRecurrenceRules lists all accepted recurrence rules.
var validRecurrenceRules = map[RecurrenceRule]bool{
	RecurrenceNone:    true,
	RecurrenceDaily:   true,
	RecurrenceWeekly:  true,
	RecurrenceMonthly: true,
	RecurrenceYearly:  true,
}

// ValidRecurrenceRule returns true if r is a valid recurrence rule.
func ValidRecurrenceRule(r RecurrenceRule) bool {
	return validRecurrenceRules[r]
}

// Transaction represents a single ledger entry. Amount is signed:
// negative is money out, positive is money in. A transaction belongs to
// exactly one account. Transfer legs are ordinary transactions with no
// stored link to their Transfer record; pairing is reconstructed by
// convention (see services/account).
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	BNPLPlanID  string          `json:"bnpl_plan_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Scheduled   bool            `json:"scheduled,omitempty"`
	Recurrence  RecurrenceRule  `json:"recurrence,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsOutflow returns true when the transaction moves money out of its account.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// SameCalendarDay reports whether two timestamps fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
