// Package transaction provides ledger entry and transfer management
package transaction

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.TransactionService = (*Service)(nil)

// Service implements TransactionService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new transaction service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// validateTransaction checks that a transaction has valid field values.
func validateTransaction(tx models.Transaction) error {
	if strings.TrimSpace(tx.AccountID) == "" {
		return fmt.Errorf("account_id is required")
	}
	if tx.Amount.IsZero() {
		return fmt.Errorf("amount must not be zero")
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	desc := strings.TrimSpace(tx.Description)
	if desc == "" {
		return fmt.Errorf("description is required")
	}
	if len(desc) > 500 {
		return fmt.Errorf("description exceeds 500 characters")
	}
	if !models.ValidRecurrenceRule(tx.Recurrence) {
		return fmt.Errorf("invalid recurrence rule %q", tx.Recurrence)
	}
	if tx.Recurrence != models.RecurrenceNone && !tx.Scheduled {
		return fmt.Errorf("recurrence requires the scheduled flag")
	}
	return nil
}

// AddTransaction stores a new ledger entry. The owning account must exist.
func (s *Service) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	userID := common.ResolveUserID(ctx)
	if _, err := s.storage.Ledger().GetAccount(ctx, userID, tx.AccountID); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	now := time.Now()
	tx.ID = uuid.NewString()
	tx.UserID = userID
	tx.Description = strings.TrimSpace(tx.Description)
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.storage.Ledger().SaveTransaction(ctx, &tx); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", tx.ID).Str("account_id", tx.AccountID).
		Str("amount", tx.Amount.String()).Msg("Transaction added")
	return &tx, nil
}

// UpdateTransaction updates an existing entry by id (merge semantics:
// only non-zero fields overwrite).
func (s *Service) UpdateTransaction(ctx context.Context, id string, update models.Transaction) (*models.Transaction, error) {
	userID := common.ResolveUserID(ctx)
	existing, err := s.storage.Ledger().GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if update.AccountID != "" && update.AccountID != existing.AccountID {
		if _, err := s.storage.Ledger().GetAccount(ctx, userID, update.AccountID); err != nil {
			return nil, fmt.Errorf("invalid transaction update: %w", err)
		}
		existing.AccountID = update.AccountID
	}
	if update.CategoryID != "" {
		existing.CategoryID = update.CategoryID
	}
	if update.BNPLPlanID != "" {
		existing.BNPLPlanID = update.BNPLPlanID
	}
	if !update.Amount.IsZero() {
		existing.Amount = update.Amount
	}
	if desc := strings.TrimSpace(update.Description); desc != "" {
		if len(desc) > 500 {
			return nil, fmt.Errorf("invalid transaction update: description exceeds 500 characters")
		}
		existing.Description = desc
	}
	if !update.Date.IsZero() {
		existing.Date = update.Date
	}
	if update.Recurrence != models.RecurrenceNone {
		if !models.ValidRecurrenceRule(update.Recurrence) {
			return nil, fmt.Errorf("invalid transaction update: invalid recurrence rule %q", update.Recurrence)
		}
		existing.Recurrence = update.Recurrence
		existing.Scheduled = true
	}
	existing.UpdatedAt = time.Now()

	if err := s.storage.Ledger().SaveTransaction(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("Transaction updated")
	return existing, nil
}

// RemoveTransaction deletes one entry by id.
func (s *Service) RemoveTransaction(ctx context.Context, id string) error {
	userID := common.ResolveUserID(ctx)
	if err := s.storage.Ledger().DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Transaction removed")
	return nil
}

// ListTransactions returns the user's entries sorted by date descending.
// When accountID is non-empty only that account's entries are returned.
func (s *Service) ListTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	txs, err := s.storage.Ledger().ListTransactions(ctx, common.ResolveUserID(ctx))
	if err != nil {
		return nil, err
	}
	if accountID != "" {
		filtered := make([]models.Transaction, 0, len(txs))
		for _, tx := range txs {
			if tx.AccountID == accountID {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

// AddTransfer records a Transfer and synthesizes its two ledger legs as
// independent transaction rows: a debit in the source account and a credit
// in the destination. The legs carry no reference to the transfer; the
// deletion cascade re-pairs them from the wording and amount convention
// established here.
func (s *Service) AddTransfer(ctx context.Context, req interfaces.TransferRequest) (*models.Transfer, error) {
	if strings.TrimSpace(req.SourceID) == "" || strings.TrimSpace(req.DestinationID) == "" {
		return nil, fmt.Errorf("invalid transfer: both source and destination accounts are required")
	}
	if req.SourceID == req.DestinationID {
		return nil, fmt.Errorf("invalid transfer: source and destination must be different")
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid transfer: amount must be positive")
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("invalid transfer: date is required")
	}
	if req.Type == "" {
		req.Type = models.TransferTypeStandard
	}
	if !models.ValidTransferType(req.Type) {
		return nil, fmt.Errorf("invalid transfer: invalid type %q", req.Type)
	}

	userID := common.ResolveUserID(ctx)
	ledger := s.storage.Ledger()

	source, err := ledger.GetAccount(ctx, userID, req.SourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer: %w", err)
	}
	dest, err := ledger.GetAccount(ctx, userID, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer: %w", err)
	}

	now := time.Now()
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Transfer to %s", dest.Name)
	}

	tr := models.Transfer{
		ID:            uuid.NewString(),
		UserID:        userID,
		SourceID:      source.ID,
		DestinationID: dest.ID,
		Amount:        req.Amount.Abs(),
		Description:   description,
		Date:          req.Date,
		Type:          req.Type,
		CreatedAt:     now,
	}

	debit := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   source.ID,
		Amount:      tr.Amount.Neg(),
		Description: fmt.Sprintf("Transfer to %s", dest.Name),
		Date:        tr.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	creditDesc := fmt.Sprintf("Transfer from %s", source.Name)
	if tr.Type == models.TransferTypeTopUp {
		creditDesc = fmt.Sprintf("Top up from %s", source.Name)
	}
	credit := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   dest.ID,
		Amount:      tr.Amount,
		Description: creditDesc,
		Date:        tr.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ledger.SaveTransfer(ctx, &tr); err != nil {
		return nil, err
	}
	if err := ledger.SaveTransaction(ctx, &debit); err != nil {
		return nil, err
	}
	if err := ledger.SaveTransaction(ctx, &credit); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", tr.ID).
		Str("from", source.Name).Str("to", dest.Name).
		Str("amount", tr.Amount.String()).Msg("Transfer added")
	return &tr, nil
}

// ListTransfers returns the user's transfers sorted by date descending.
func (s *Service) ListTransfers(ctx context.Context) ([]models.Transfer, error) {
	transfers, err := s.storage.Ledger().ListTransfers(ctx, common.ResolveUserID(ctx))
	if err != nil {
		return nil, err
	}
	sort.Slice(transfers, func(i, j int) bool {
		return transfers[i].Date.After(transfers[j].Date)
	})
	return transfers, nil
}
