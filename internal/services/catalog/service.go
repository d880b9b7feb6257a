// Package catalog provides category, budget, and event reference data
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.CatalogService = (*Service)(nil)

// Service implements CatalogService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new catalog service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// AddCategory stores a new category.
func (s *Service) AddCategory(ctx context.Context, cat models.Category) (*models.Category, error) {
	name := strings.TrimSpace(cat.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid category: name is required")
	}

	cat.ID = uuid.NewString()
	cat.UserID = common.ResolveUserID(ctx)
	cat.Name = name
	cat.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveCategory(ctx, &cat); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", cat.ID).Str("name", cat.Name).Msg("Category added")
	return &cat, nil
}

// ListCategories returns all of the user's categories.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.storage.Ledger().ListCategories(ctx, common.ResolveUserID(ctx))
}

// RemoveCategory deletes a category by id. Transactions keep their
// category_id; a dangling category reference only loses its display name.
func (s *Service) RemoveCategory(ctx context.Context, id string) error {
	if err := s.storage.Ledger().DeleteCategory(ctx, common.ResolveUserID(ctx), id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Category removed")
	return nil
}

// AddBudget stores a new monthly budget for a category.
func (s *Service) AddBudget(ctx context.Context, budget models.Budget) (*models.Budget, error) {
	if strings.TrimSpace(budget.CategoryID) == "" {
		return nil, fmt.Errorf("invalid budget: category_id is required")
	}
	if !budget.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("invalid budget: monthly_limit must be positive")
	}

	budget.ID = uuid.NewString()
	budget.UserID = common.ResolveUserID(ctx)
	budget.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveBudget(ctx, &budget); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", budget.ID).Str("category_id", budget.CategoryID).Msg("Budget added")
	return &budget, nil
}

// ListBudgets returns all of the user's budgets.
func (s *Service) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	return s.storage.Ledger().ListBudgets(ctx, common.ResolveUserID(ctx))
}

// RemoveBudget deletes a budget by id.
func (s *Service) RemoveBudget(ctx context.Context, id string) error {
	if err := s.storage.Ledger().DeleteBudget(ctx, common.ResolveUserID(ctx), id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Budget removed")
	return nil
}

// AddEvent stores a new event.
func (s *Service) AddEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	name := strings.TrimSpace(event.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid event: name is required")
	}
	if event.Date.IsZero() {
		return nil, fmt.Errorf("invalid event: date is required")
	}

	event.ID = uuid.NewString()
	event.UserID = common.ResolveUserID(ctx)
	event.Name = name
	event.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveEvent(ctx, &event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", event.ID).Str("name", event.Name).Msg("Event added")
	return &event, nil
}

// ListEvents returns all of the user's events.
func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.storage.Ledger().ListEvents(ctx, common.ResolveUserID(ctx))
}

// RemoveEvent deletes an event by id.
func (s *Service) RemoveEvent(ctx context.Context, id string) error {
	if err := s.storage.Ledger().DeleteEvent(ctx, common.ResolveUserID(ctx), id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Event removed")
	return nil
}
