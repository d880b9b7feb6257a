package models

// DeletionImpact reports what deleting an account would remove or touch.
// It is purely informational and computed without mutating the ledger.
//
// TotalImpactedItems counts only the target account's own rows plus the
// transfer records; paired legs living in other accounts are surfaced via
// AffectedAccounts instead of inflating the count.
type DeletionImpact struct {
	Account            Account   `json:"account"`
	TransactionCount   int       `json:"transaction_count"`
	TransferCount      int       `json:"transfer_count"`
	BNPLPlanCount      int       `json:"bnpl_plan_count"`
	ArrangementCount   int       `json:"arrangement_count"`
	TotalImpactedItems int       `json:"total_impacted_items"`
	AffectedAccounts   []Account `json:"affected_accounts"`
	Description        string    `json:"description"`
}

// CascadePlan names every record a cascade will delete, captured from
// pre-deletion state. The store applies it atomically in fixed order:
// matched legs, transfers, direct transactions, plans, arrangements,
// then the account itself.
type CascadePlan struct {
	AccountID      string
	LegIDs         []string // matched transfer legs, any account
	TransferIDs    []string
	TransactionIDs []string // direct rows not already in LegIDs
	PlanIDs        []string
	ArrangementIDs []string
}

// Size returns the number of records the plan will delete, including the
// account itself.
func (p CascadePlan) Size() int {
	return len(p.LegIDs) + len(p.TransferIDs) + len(p.TransactionIDs) +
		len(p.PlanIDs) + len(p.ArrangementIDs) + 1
}
