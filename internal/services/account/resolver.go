package account

import (
	"strings"

	"github.com/jcallahan/pocketledger/internal/models"
)

// Transfer legs are ordinary transactions with no stored link back to their
// Transfer record, so pairing is reconstructed from field heuristics:
// account, exact signed amount, same calendar day, and a description or
// category hint. A legitimate transaction that happens to satisfy all four
// predicates will be misclassified; that imprecision is accepted and can be
// tightened via strict matching, which demands the description hint instead
// of accepting an absent category alone.

// isSourceLeg reports whether tx is the debit leg of tr: the row in the
// source account carrying the exact negated amount on the transfer's day.
func isSourceLeg(tx models.Transaction, tr models.Transfer, strict bool) bool {
	if tx.AccountID != tr.SourceID {
		return false
	}
	if !tx.Amount.Equal(tr.Amount.Neg()) {
		return false
	}
	if !models.SameCalendarDay(tx.Date, tr.Date) {
		return false
	}
	hint := strings.Contains(strings.ToLower(tx.Description), "transfer")
	if strict {
		return hint
	}
	return hint || tx.CategoryID == ""
}

// isDestinationLeg reports whether tx is the credit leg of tr. Top-ups
// phrase the credit side as "Top up from ...", so that wording also counts
// as a hint.
func isDestinationLeg(tx models.Transaction, tr models.Transfer, strict bool) bool {
	if tx.AccountID != tr.DestinationID {
		return false
	}
	if !tx.Amount.Equal(tr.Amount) {
		return false
	}
	if !models.SameCalendarDay(tx.Date, tr.Date) {
		return false
	}
	desc := strings.ToLower(tx.Description)
	hint := strings.Contains(desc, "transfer") || strings.Contains(desc, "top up")
	if strict {
		return hint
	}
	return hint || tx.CategoryID == ""
}

// resolveLegs returns the ids of the transaction rows that realize tr, at
// most one per side. Either side may legitimately be missing, so zero, one,
// or two ids come back; that is normal variation, never an error.
func resolveLegs(tr models.Transfer, txs []models.Transaction, strict bool) []string {
	var legs []string
	for _, tx := range txs {
		if isSourceLeg(tx, tr, strict) {
			legs = append(legs, tx.ID)
			break
		}
	}
	for _, tx := range txs {
		if isDestinationLeg(tx, tr, strict) {
			legs = append(legs, tx.ID)
			break
		}
	}
	return legs
}
