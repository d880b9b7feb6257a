package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BNPLPlan is a buy-now-pay-later installment plan attached to one account.
// Transactions may reference a plan via BNPLPlanID.
type BNPLPlan struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	AccountID         string          `json:"account_id"`
	Provider          string          `json:"provider"`
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Installments      int             `json:"installments"`
	InstallmentsPaid  int             `json:"installments_paid"`
	NextDueDate       time.Time       `json:"next_due_date"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Remaining returns the amount still owed on the plan.
func (p BNPLPlan) Remaining() decimal.Decimal {
	paid := p.InstallmentAmount.Mul(decimal.NewFromInt(int64(p.InstallmentsPaid)))
	rem := p.TotalAmount.Sub(paid)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ArrangementKind distinguishes informal lending arrangements.
type ArrangementKind string

const (
	ArrangementFamilyLoan     ArrangementKind = "family_loan"
	ArrangementDebtCollection ArrangementKind = "debt_collection"
)

// ValidArrangementKind returns true if k is a valid arrangement kind.
func ValidArrangementKind(k ArrangementKind) bool {
	return k == ArrangementFamilyLoan || k == ArrangementDebtCollection
}

// FlexibleArrangement models an informal repayment arrangement (family or
// friend loan, debt-collection plan) attached to one account.
type FlexibleArrangement struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	AccountID       string          `json:"account_id"`
	Kind            ArrangementKind `json:"kind"`
	Counterparty    string          `json:"counterparty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	NextPaymentDate time.Time       `json:"next_payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
