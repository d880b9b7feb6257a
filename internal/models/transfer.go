package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferType tags the purpose of a transfer.
type TransferType string

const (
	TransferTypeStandard TransferType = "standard"
	TransferTypeTopUp    TransferType = "top_up"
)

// ValidTransferType returns true if t is a valid transfer type.
func ValidTransferType(t TransferType) bool {
	return t == TransferTypeStandard || t == TransferTypeTopUp
}

// Transfer records a logical movement of money between two accounts.
// Amount is always positive. The two ledger-visible legs are stored as
// independent Transaction rows and are NOT referenced here; they match
// this record by account, signed amount, date, and description convention.
type Transfer struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	SourceID      string          `json:"source_account_id"`
	DestinationID string          `json:"destination_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	Type          TransferType    `json:"type"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OtherAccountID returns the counterparty account for a given side of the
// transfer, or empty string when accountID is neither side.
func (tr Transfer) OtherAccountID(accountID string) string {
	switch accountID {
	case tr.SourceID:
		return tr.DestinationID
	case tr.DestinationID:
		return tr.SourceID
	default:
		return ""
	}
}

// Touches returns true when accountID is either side of the transfer.
func (tr Transfer) Touches(accountID string) bool {
	return tr.SourceID == accountID || tr.DestinationID == accountID
}
