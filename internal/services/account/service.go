// Package account provides account management and the deletion cascade
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.AccountService = (*Service)(nil)

// Service implements AccountService
type Service struct {
	storage     interfaces.StorageManager
	strictMatch bool
	logger      *common.Logger
}

// NewService creates a new account service
func NewService(storage interfaces.StorageManager, cfg common.LedgerConfig, logger *common.Logger) *Service {
	return &Service{
		storage:     storage,
		strictMatch: cfg.StrictTransferMatch,
		logger:      logger,
	}
}

// validateAccount checks that an account has valid field values.
func validateAccount(acc models.Account) error {
	name := strings.TrimSpace(acc.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds 100 characters")
	}
	if !models.ValidAccountType(acc.Type) {
		return fmt.Errorf("invalid account type %q", acc.Type)
	}
	return nil
}

// CreateAccount stores a new account.
func (s *Service) CreateAccount(ctx context.Context, acc models.Account) (*models.Account, error) {
	if err := validateAccount(acc); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	now := time.Now()
	acc.ID = uuid.NewString()
	acc.UserID = common.ResolveUserID(ctx)
	acc.Name = strings.TrimSpace(acc.Name)
	acc.CreatedAt = now
	acc.UpdatedAt = now

	if err := s.storage.Ledger().SaveAccount(ctx, &acc); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", acc.ID).Str("name", acc.Name).
		Str("type", string(acc.Type)).Msg("Account created")
	return &acc, nil
}

// GetAccount retrieves one account by id.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.storage.Ledger().GetAccount(ctx, common.ResolveUserID(ctx), id)
}

// ListAccounts returns all of the user's accounts.
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.storage.Ledger().ListAccounts(ctx, common.ResolveUserID(ctx))
}

// UpdateAccount replaces the stored record matching acc.ID. Unknown ids
// return models.ErrNotFound rather than silently no-opping, so stale
// references from concurrent editors surface instead of vanishing.
func (s *Service) UpdateAccount(ctx context.Context, acc models.Account) (*models.Account, error) {
	if err := validateAccount(acc); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	userID := common.ResolveUserID(ctx)
	existing, err := s.storage.Ledger().GetAccount(ctx, userID, acc.ID)
	if err != nil {
		return nil, err
	}

	acc.UserID = existing.UserID
	acc.Name = strings.TrimSpace(acc.Name)
	acc.CreatedAt = existing.CreatedAt
	acc.UpdatedAt = time.Now()

	if err := s.storage.Ledger().SaveAccount(ctx, &acc); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", acc.ID).Str("name", acc.Name).Msg("Account updated")
	return &acc, nil
}

// GetDeletionImpact computes what deleting the account would remove,
// without mutating anything. The total counts the target account's own
// rows plus transfer records; paired legs in other accounts are surfaced
// through AffectedAccounts only.
func (s *Service) GetDeletionImpact(ctx context.Context, id string) (*models.DeletionImpact, error) {
	userID := common.ResolveUserID(ctx)
	ledger := s.storage.Ledger()

	acc, err := ledger.GetAccount(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	transfers, err := ledger.ListTransfers(ctx, userID)
	if err != nil {
		return nil, err
	}
	var related []models.Transfer
	affectedIDs := make(map[string]bool)
	for _, tr := range transfers {
		if tr.Touches(id) {
			related = append(related, tr)
			if other := tr.OtherAccountID(id); other != "" {
				affectedIDs[other] = true
			}
		}
	}

	var affected []models.Account
	for otherID := range affectedIDs {
		other, err := ledger.GetAccount(ctx, userID, otherID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		affected = append(affected, *other)
	}

	txs, err := ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	txCount := 0
	for _, tx := range txs {
		if tx.AccountID == id {
			txCount++
		}
	}

	plans, err := ledger.ListBNPLPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	planCount := 0
	for _, p := range plans {
		if p.AccountID == id {
			planCount++
		}
	}

	arrs, err := ledger.ListArrangements(ctx, userID)
	if err != nil {
		return nil, err
	}
	arrCount := 0
	for _, a := range arrs {
		if a.AccountID == id {
			arrCount++
		}
	}

	impact := &models.DeletionImpact{
		Account:            *acc,
		TransactionCount:   txCount,
		TransferCount:      len(related),
		BNPLPlanCount:      planCount,
		ArrangementCount:   arrCount,
		TotalImpactedItems: txCount + len(related) + planCount + arrCount,
		AffectedAccounts:   affected,
	}
	impact.Description = describeImpact(impact)
	return impact, nil
}

// describeImpact builds the human-readable confirmation text.
func describeImpact(impact *models.DeletionImpact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Deleting %q removes %d transactions, %d transfers, %d BNPL plans and %d arrangements.",
		impact.Account.Name, impact.TransactionCount, impact.TransferCount,
		impact.BNPLPlanCount, impact.ArrangementCount)
	if len(impact.AffectedAccounts) > 0 {
		names := make([]string, len(impact.AffectedAccounts))
		for i, acc := range impact.AffectedAccounts {
			names[i] = acc.Name
		}
		fmt.Fprintf(&b, " Linked transfer entries in %s will also be removed.",
			strings.Join(names, ", "))
	}
	return b.String()
}

// buildCascadePlan captures everything the cascade will delete from
// pre-deletion state: transfers touching the account, their matched legs
// in any account, the remaining direct transactions, and the dependent
// plans and arrangements.
func (s *Service) buildCascadePlan(ctx context.Context, userID, accountID string) (*models.CascadePlan, error) {
	ledger := s.storage.Ledger()

	transfers, err := ledger.ListTransfers(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	plans, err := ledger.ListBNPLPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	arrs, err := ledger.ListArrangements(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := &models.CascadePlan{AccountID: accountID}

	// Legs are resolved against the full un-mutated transaction set so a
	// counterparty's credit entry is caught even though it lives in
	// another account.
	legSet := make(map[string]bool)
	for _, tr := range transfers {
		if !tr.Touches(accountID) {
			continue
		}
		plan.TransferIDs = append(plan.TransferIDs, tr.ID)
		for _, legID := range resolveLegs(tr, txs, s.strictMatch) {
			if !legSet[legID] {
				legSet[legID] = true
				plan.LegIDs = append(plan.LegIDs, legID)
			}
		}
	}

	for _, tx := range txs {
		if tx.AccountID == accountID && !legSet[tx.ID] {
			plan.TransactionIDs = append(plan.TransactionIDs, tx.ID)
		}
	}
	for _, p := range plans {
		if p.AccountID == accountID {
			plan.PlanIDs = append(plan.PlanIDs, p.ID)
		}
	}
	for _, a := range arrs {
		if a.AccountID == accountID {
			plan.ArrangementIDs = append(plan.ArrangementIDs, a.ID)
		}
	}

	return plan, nil
}

// DeleteAccount removes the account together with every dependent record.
// Deleting an id with no remaining rows is a no-op, which makes the call
// idempotent in effect.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	userID := common.ResolveUserID(ctx)

	plan, err := s.buildCascadePlan(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to plan cascade for account '%s': %w", id, err)
	}

	if err := s.storage.Ledger().ApplyCascade(ctx, userID, *plan); err != nil {
		return fmt.Errorf("failed to delete account '%s': %w", id, err)
	}

	s.logger.Info().
		Str("id", id).
		Int("legs", len(plan.LegIDs)).
		Int("transfers", len(plan.TransferIDs)).
		Int("transactions", len(plan.TransactionIDs)).
		Int("bnpl_plans", len(plan.PlanIDs)).
		Int("arrangements", len(plan.ArrangementIDs)).
		Msg("Account deleted")
	return nil
}
