// Package plan provides BNPL plan and flexible arrangement management
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.PlanService = (*Service)(nil)

// Service implements PlanService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new plan service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AddBNPLPlan stores a new installment plan against an existing account.
func (s *Service) AddBNPLPlan(ctx context.Context, plan models.BNPLPlan) (*models.BNPLPlan, error) {
	if strings.TrimSpace(plan.AccountID) == "" {
		return nil, fmt.Errorf("invalid bnpl plan: account_id is required")
	}
	if strings.TrimSpace(plan.Provider) == "" {
		return nil, fmt.Errorf("invalid bnpl plan: provider is required")
	}
	if !plan.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("invalid bnpl plan: total_amount must be positive")
	}
	if plan.Installments <= 0 {
		return nil, fmt.Errorf("invalid bnpl plan: installments must be positive")
	}
	if !plan.InstallmentAmount.IsPositive() {
		return nil, fmt.Errorf("invalid bnpl plan: installment_amount must be positive")
	}

	userID := common.ResolveUserID(ctx)
	if _, err := s.storage.Ledger().GetAccount(ctx, userID, plan.AccountID); err != nil {
		return nil, fmt.Errorf("invalid bnpl plan: %w", err)
	}

	plan.ID = uuid.NewString()
	plan.UserID = userID
	plan.Provider = strings.TrimSpace(plan.Provider)
	plan.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveBNPLPlan(ctx, &plan); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", plan.ID).Str("provider", plan.Provider).
		Str("account_id", plan.AccountID).Msg("BNPL plan added")
	return &plan, nil
}

// ListBNPLPlans returns all of the user's installment plans.
func (s *Service) ListBNPLPlans(ctx context.Context) ([]models.BNPLPlan, error) {
	return s.storage.Ledger().ListBNPLPlans(ctx, common.ResolveUserID(ctx))
}

// RecordInstallmentPaid marks one more installment paid and advances the
// next due date by a month.
func (s *Service) RecordInstallmentPaid(ctx context.Context, planID string) (*models.BNPLPlan, error) {
	userID := common.ResolveUserID(ctx)
	plan, err := s.storage.Ledger().GetBNPLPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.InstallmentsPaid >= plan.Installments {
		return nil, fmt.Errorf("bnpl plan '%s' is already fully paid", planID)
	}

	plan.InstallmentsPaid++
	plan.NextDueDate = plan.NextDueDate.AddDate(0, 1, 0)

	if err := s.storage.Ledger().SaveBNPLPlan(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", planID).
		Int("paid", plan.InstallmentsPaid).Int("of", plan.Installments).
		Msg("BNPL installment recorded")
	return plan, nil
}

// AddArrangement stores a new flexible arrangement against an existing account.
func (s *Service) AddArrangement(ctx context.Context, arr models.FlexibleArrangement) (*models.FlexibleArrangement, error) {
	if strings.TrimSpace(arr.AccountID) == "" {
		return nil, fmt.Errorf("invalid arrangement: account_id is required")
	}
	if !models.ValidArrangementKind(arr.Kind) {
		return nil, fmt.Errorf("invalid arrangement: invalid kind %q", arr.Kind)
	}
	if strings.TrimSpace(arr.Counterparty) == "" {
		return nil, fmt.Errorf("invalid arrangement: counterparty is required")
	}
	if !arr.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("invalid arrangement: total_amount must be positive")
	}

	userID := common.ResolveUserID(ctx)
	if _, err := s.storage.Ledger().GetAccount(ctx, userID, arr.AccountID); err != nil {
		return nil, fmt.Errorf("invalid arrangement: %w", err)
	}

	arr.ID = uuid.NewString()
	arr.UserID = userID
	arr.Counterparty = strings.TrimSpace(arr.Counterparty)
	if arr.RemainingAmount.IsZero() {
		arr.RemainingAmount = arr.TotalAmount
	}
	arr.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveArrangement(ctx, &arr); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", arr.ID).Str("kind", string(arr.Kind)).
		Str("counterparty", arr.Counterparty).Msg("Arrangement added")
	return &arr, nil
}

// ListArrangements returns all of the user's flexible arrangements.
func (s *Service) ListArrangements(ctx context.Context) ([]models.FlexibleArrangement, error) {
	return s.storage.Ledger().ListArrangements(ctx, common.ResolveUserID(ctx))
}

// RecordArrangementPayment reduces the remaining amount and advances the
// next payment date by a month. Remaining never goes below zero.
func (s *Service) RecordArrangementPayment(ctx context.Context, arrangementID string, amount decimal.Decimal) (*models.FlexibleArrangement, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("invalid payment: amount must be positive")
	}

	userID := common.ResolveUserID(ctx)
	arr, err := s.storage.Ledger().GetArrangement(ctx, userID, arrangementID)
	if err != nil {
		return nil, err
	}

	arr.RemainingAmount = arr.RemainingAmount.Sub(amount)
	if arr.RemainingAmount.IsNegative() {
		arr.RemainingAmount = decimal.Zero
	}
	arr.NextPaymentDate = arr.NextPaymentDate.AddDate(0, 1, 0)

	if err := s.storage.Ledger().SaveArrangement(ctx, arr); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", arrangementID).
		Str("remaining", arr.RemainingAmount.String()).
		Msg("Arrangement payment recorded")
	return arr, nil
}
