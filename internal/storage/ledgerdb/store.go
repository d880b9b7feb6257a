// Package ledgerdb implements LedgerStore using BadgerHold.
// Every record is keyed user_id + \x00 + kind + \x00 + id; the null byte
// prevents collisions when ids contain separator characters.
package ledgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerStore = (*Store)(nil)

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) the ledger database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledgerdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledgerdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("LedgerDB opened")
	return &Store{db: db, logger: logger}, nil
}

const keySep = "\x00"

// Record kinds used in composite keys.
const (
	kindAccount     = "account"
	kindTransaction = "transaction"
	kindTransfer    = "transfer"
	kindBNPLPlan    = "bnpl_plan"
	kindArrangement = "arrangement"
	kindCategory    = "category"
	kindBudget      = "budget"
	kindEvent       = "event"
)

// compositeKey builds the storage key: user_id + \x00 + kind + \x00 + id
func compositeKey(userID, kind, id string) string {
	return userID + keySep + kind + keySep + id
}

// --- Accounts ---

func (s *Store) GetAccount(_ context.Context, userID, id string) (*models.Account, error) {
	var acc models.Account
	if err := s.db.Get(compositeKey(userID, kindAccount, id), &acc); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("account '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account '%s': %w", id, err)
	}
	return &acc, nil
}

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	ck := compositeKey(account.UserID, kindAccount, account.ID)
	if err := s.db.Upsert(ck, account); err != nil {
		return fmt.Errorf("failed to save account '%s': %w", account.ID, err)
	}
	return nil
}

func (s *Store) ListAccounts(_ context.Context, userID string) ([]models.Account, error) {
	var all []models.Account
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	result := make([]models.Account, 0, len(all))
	for _, acc := range all {
		if acc.UserID == userID {
			result = append(result, acc)
		}
	}
	return result, nil
}

// --- Transactions ---

func (s *Store) GetTransaction(_ context.Context, userID, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Get(compositeKey(userID, kindTransaction, id), &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("transaction '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	return &tx, nil
}

func (s *Store) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	ck := compositeKey(tx.UserID, kindTransaction, tx.ID)
	if err := s.db.Upsert(ck, tx); err != nil {
		return fmt.Errorf("failed to save transaction '%s': %w", tx.ID, err)
	}
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	ck := compositeKey(userID, kindTransaction, id)
	if err := s.db.Delete(ck, models.Transaction{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("transaction '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	var all []models.Transaction
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	result := make([]models.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// --- Transfers ---

func (s *Store) GetTransfer(_ context.Context, userID, id string) (*models.Transfer, error) {
	var tr models.Transfer
	if err := s.db.Get(compositeKey(userID, kindTransfer, id), &tr); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("transfer '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transfer '%s': %w", id, err)
	}
	return &tr, nil
}

func (s *Store) SaveTransfer(_ context.Context, tr *models.Transfer) error {
	ck := compositeKey(tr.UserID, kindTransfer, tr.ID)
	if err := s.db.Upsert(ck, tr); err != nil {
		return fmt.Errorf("failed to save transfer '%s': %w", tr.ID, err)
	}
	return nil
}

func (s *Store) DeleteTransfer(_ context.Context, userID, id string) error {
	ck := compositeKey(userID, kindTransfer, id)
	if err := s.db.Delete(ck, models.Transfer{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("transfer '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete transfer '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListTransfers(_ context.Context, userID string) ([]models.Transfer, error) {
	var all []models.Transfer
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	result := make([]models.Transfer, 0, len(all))
	for _, tr := range all {
		if tr.UserID == userID {
			result = append(result, tr)
		}
	}
	return result, nil
}

// --- BNPL plans ---

func (s *Store) GetBNPLPlan(_ context.Context, userID, id string) (*models.BNPLPlan, error) {
	var plan models.BNPLPlan
	if err := s.db.Get(compositeKey(userID, kindBNPLPlan, id), &plan); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("bnpl plan '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bnpl plan '%s': %w", id, err)
	}
	return &plan, nil
}

func (s *Store) SaveBNPLPlan(_ context.Context, plan *models.BNPLPlan) error {
	ck := compositeKey(plan.UserID, kindBNPLPlan, plan.ID)
	if err := s.db.Upsert(ck, plan); err != nil {
		return fmt.Errorf("failed to save bnpl plan '%s': %w", plan.ID, err)
	}
	return nil
}

func (s *Store) ListBNPLPlans(_ context.Context, userID string) ([]models.BNPLPlan, error) {
	var all []models.BNPLPlan
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list bnpl plans: %w", err)
	}
	result := make([]models.BNPLPlan, 0, len(all))
	for _, plan := range all {
		if plan.UserID == userID {
			result = append(result, plan)
		}
	}
	return result, nil
}

// --- Flexible arrangements ---

func (s *Store) GetArrangement(_ context.Context, userID, id string) (*models.FlexibleArrangement, error) {
	var arr models.FlexibleArrangement
	if err := s.db.Get(compositeKey(userID, kindArrangement, id), &arr); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("arrangement '%s': %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get arrangement '%s': %w", id, err)
	}
	return &arr, nil
}

func (s *Store) SaveArrangement(_ context.Context, arr *models.FlexibleArrangement) error {
	ck := compositeKey(arr.UserID, kindArrangement, arr.ID)
	if err := s.db.Upsert(ck, arr); err != nil {
		return fmt.Errorf("failed to save arrangement '%s': %w", arr.ID, err)
	}
	return nil
}

func (s *Store) ListArrangements(_ context.Context, userID string) ([]models.FlexibleArrangement, error) {
	var all []models.FlexibleArrangement
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list arrangements: %w", err)
	}
	result := make([]models.FlexibleArrangement, 0, len(all))
	for _, arr := range all {
		if arr.UserID == userID {
			result = append(result, arr)
		}
	}
	return result, nil
}

// --- Categories ---

func (s *Store) SaveCategory(_ context.Context, cat *models.Category) error {
	ck := compositeKey(cat.UserID, kindCategory, cat.ID)
	if err := s.db.Upsert(ck, cat); err != nil {
		return fmt.Errorf("failed to save category '%s': %w", cat.ID, err)
	}
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, userID, id string) error {
	ck := compositeKey(userID, kindCategory, id)
	if err := s.db.Delete(ck, models.Category{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("category '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete category '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListCategories(_ context.Context, userID string) ([]models.Category, error) {
	var all []models.Category
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	result := make([]models.Category, 0, len(all))
	for _, cat := range all {
		if cat.UserID == userID {
			result = append(result, cat)
		}
	}
	return result, nil
}

// --- Budgets ---

func (s *Store) SaveBudget(_ context.Context, budget *models.Budget) error {
	ck := compositeKey(budget.UserID, kindBudget, budget.ID)
	if err := s.db.Upsert(ck, budget); err != nil {
		return fmt.Errorf("failed to save budget '%s': %w", budget.ID, err)
	}
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, userID, id string) error {
	ck := compositeKey(userID, kindBudget, id)
	if err := s.db.Delete(ck, models.Budget{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("budget '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete budget '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListBudgets(_ context.Context, userID string) ([]models.Budget, error) {
	var all []models.Budget
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	result := make([]models.Budget, 0, len(all))
	for _, budget := range all {
		if budget.UserID == userID {
			result = append(result, budget)
		}
	}
	return result, nil
}

// --- Events ---

func (s *Store) SaveEvent(_ context.Context, event *models.Event) error {
	ck := compositeKey(event.UserID, kindEvent, event.ID)
	if err := s.db.Upsert(ck, event); err != nil {
		return fmt.Errorf("failed to save event '%s': %w", event.ID, err)
	}
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, userID, id string) error {
	ck := compositeKey(userID, kindEvent, id)
	if err := s.db.Delete(ck, models.Event{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("event '%s': %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete event '%s': %w", id, err)
	}
	return nil
}

func (s *Store) ListEvents(_ context.Context, userID string) ([]models.Event, error) {
	var all []models.Event
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	result := make([]models.Event, 0, len(all))
	for _, event := range all {
		if event.UserID == userID {
			result = append(result, event)
		}
	}
	return result, nil
}

// --- Cascade ---

// ApplyCascade deletes every record named by the plan in one Badger
// transaction. Order within the batch follows the executor contract:
// matched legs, transfers, remaining direct transactions, plans,
// arrangements, and finally the account. Records already gone are
// skipped, which makes re-running a cascade for a vanished account a
// no-op for its surviving ids.
func (s *Store) ApplyCascade(_ context.Context, userID string, plan models.CascadePlan) error {
	err := s.db.Badger().Update(func(txn *badger.Txn) error {
		for _, id := range plan.LegIDs {
			if err := s.txDelete(txn, compositeKey(userID, kindTransaction, id), models.Transaction{}); err != nil {
				return fmt.Errorf("failed to delete transfer leg '%s': %w", id, err)
			}
		}
		for _, id := range plan.TransferIDs {
			if err := s.txDelete(txn, compositeKey(userID, kindTransfer, id), models.Transfer{}); err != nil {
				return fmt.Errorf("failed to delete transfer '%s': %w", id, err)
			}
		}
		for _, id := range plan.TransactionIDs {
			if err := s.txDelete(txn, compositeKey(userID, kindTransaction, id), models.Transaction{}); err != nil {
				return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
			}
		}
		for _, id := range plan.PlanIDs {
			if err := s.txDelete(txn, compositeKey(userID, kindBNPLPlan, id), models.BNPLPlan{}); err != nil {
				return fmt.Errorf("failed to delete bnpl plan '%s': %w", id, err)
			}
		}
		for _, id := range plan.ArrangementIDs {
			if err := s.txDelete(txn, compositeKey(userID, kindArrangement, id), models.FlexibleArrangement{}); err != nil {
				return fmt.Errorf("failed to delete arrangement '%s': %w", id, err)
			}
		}
		if err := s.txDelete(txn, compositeKey(userID, kindAccount, plan.AccountID), models.Account{}); err != nil {
			return fmt.Errorf("failed to delete account '%s': %w", plan.AccountID, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return fmt.Errorf("cascade for account '%s': %w", plan.AccountID, models.ErrConflict)
		}
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("account_id", plan.AccountID).
		Int("records", plan.Size()).
		Msg("Cascade applied")
	return nil
}

// txDelete removes one record inside a transaction, tolerating records that
// are already gone.
func (s *Store) txDelete(txn *badger.Txn, key string, dataType interface{}) error {
	if err := s.db.TxDelete(txn, key, dataType); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return err
	}
	return nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
