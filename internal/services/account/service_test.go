package account

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// --- Mock ledger store ---

type mockLedgerStore struct {
	accounts     map[string]models.Account
	transactions map[string]models.Transaction
	transfers    map[string]models.Transfer
	plans        map[string]models.BNPLPlan
	arrangements map[string]models.FlexibleArrangement
	categories   map[string]models.Category
	budgets      map[string]models.Budget
	events       map[string]models.Event

	cascades []models.CascadePlan
}

func newMockLedgerStore() *mockLedgerStore {
	return &mockLedgerStore{
		accounts:     make(map[string]models.Account),
		transactions: make(map[string]models.Transaction),
		transfers:    make(map[string]models.Transfer),
		plans:        make(map[string]models.BNPLPlan),
		arrangements: make(map[string]models.FlexibleArrangement),
		categories:   make(map[string]models.Category),
		budgets:      make(map[string]models.Budget),
		events:       make(map[string]models.Event),
	}
}

func (m *mockLedgerStore) GetAccount(_ context.Context, _, id string) (*models.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &acc, nil
}

func (m *mockLedgerStore) SaveAccount(_ context.Context, account *models.Account) error {
	m.accounts[account.ID] = *account
	return nil
}

func (m *mockLedgerStore) ListAccounts(_ context.Context, _ string) ([]models.Account, error) {
	var result []models.Account
	for _, acc := range m.accounts {
		result = append(result, acc)
	}
	return result, nil
}

func (m *mockLedgerStore) GetTransaction(_ context.Context, _, id string) (*models.Transaction, error) {
	tx, ok := m.transactions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &tx, nil
}

func (m *mockLedgerStore) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	m.transactions[tx.ID] = *tx
	return nil
}

func (m *mockLedgerStore) DeleteTransaction(_ context.Context, _, id string) error {
	if _, ok := m.transactions[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *mockLedgerStore) ListTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	var result []models.Transaction
	for _, tx := range m.transactions {
		result = append(result, tx)
	}
	return result, nil
}

func (m *mockLedgerStore) GetTransfer(_ context.Context, _, id string) (*models.Transfer, error) {
	tr, ok := m.transfers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &tr, nil
}

func (m *mockLedgerStore) SaveTransfer(_ context.Context, tr *models.Transfer) error {
	m.transfers[tr.ID] = *tr
	return nil
}

func (m *mockLedgerStore) DeleteTransfer(_ context.Context, _, id string) error {
	delete(m.transfers, id)
	return nil
}

func (m *mockLedgerStore) ListTransfers(_ context.Context, _ string) ([]models.Transfer, error) {
	var result []models.Transfer
	for _, tr := range m.transfers {
		result = append(result, tr)
	}
	return result, nil
}

func (m *mockLedgerStore) GetBNPLPlan(_ context.Context, _, id string) (*models.BNPLPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (m *mockLedgerStore) SaveBNPLPlan(_ context.Context, plan *models.BNPLPlan) error {
	m.plans[plan.ID] = *plan
	return nil
}

func (m *mockLedgerStore) ListBNPLPlans(_ context.Context, _ string) ([]models.BNPLPlan, error) {
	var result []models.BNPLPlan
	for _, p := range m.plans {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockLedgerStore) GetArrangement(_ context.Context, _, id string) (*models.FlexibleArrangement, error) {
	a, ok := m.arrangements[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (m *mockLedgerStore) SaveArrangement(_ context.Context, arr *models.FlexibleArrangement) error {
	m.arrangements[arr.ID] = *arr
	return nil
}

func (m *mockLedgerStore) ListArrangements(_ context.Context, _ string) ([]models.FlexibleArrangement, error) {
	var result []models.FlexibleArrangement
	for _, a := range m.arrangements {
		result = append(result, a)
	}
	return result, nil
}

func (m *mockLedgerStore) SaveCategory(_ context.Context, cat *models.Category) error {
	m.categories[cat.ID] = *cat
	return nil
}

func (m *mockLedgerStore) DeleteCategory(_ context.Context, _, id string) error {
	delete(m.categories, id)
	return nil
}

func (m *mockLedgerStore) ListCategories(_ context.Context, _ string) ([]models.Category, error) {
	return nil, nil
}

func (m *mockLedgerStore) SaveBudget(_ context.Context, budget *models.Budget) error {
	m.budgets[budget.ID] = *budget
	return nil
}

func (m *mockLedgerStore) DeleteBudget(_ context.Context, _, id string) error {
	delete(m.budgets, id)
	return nil
}

func (m *mockLedgerStore) ListBudgets(_ context.Context, _ string) ([]models.Budget, error) {
	return nil, nil
}

func (m *mockLedgerStore) SaveEvent(_ context.Context, event *models.Event) error {
	m.events[event.ID] = *event
	return nil
}

func (m *mockLedgerStore) DeleteEvent(_ context.Context, _, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockLedgerStore) ListEvents(_ context.Context, _ string) ([]models.Event, error) {
	return nil, nil
}

// ApplyCascade mirrors the store contract: every named record plus the
// account removed in one batch, missing ids tolerated.
func (m *mockLedgerStore) ApplyCascade(_ context.Context, _ string, plan models.CascadePlan) error {
	m.cascades = append(m.cascades, plan)
	for _, id := range plan.LegIDs {
		delete(m.transactions, id)
	}
	for _, id := range plan.TransferIDs {
		delete(m.transfers, id)
	}
	for _, id := range plan.TransactionIDs {
		delete(m.transactions, id)
	}
	for _, id := range plan.PlanIDs {
		delete(m.plans, id)
	}
	for _, id := range plan.ArrangementIDs {
		delete(m.arrangements, id)
	}
	delete(m.accounts, plan.AccountID)
	return nil
}

func (m *mockLedgerStore) Close() error { return nil }

type mockStorageManager struct {
	ledger *mockLedgerStore
}

func (m *mockStorageManager) Ledger() interfaces.LedgerStore { return m.ledger }
func (m *mockStorageManager) Close() error                   { return nil }

// --- Test helpers ---

func testContext() context.Context {
	uc := &common.UserContext{UserID: "test-user"}
	return common.WithUserContext(context.Background(), uc)
}

func testService(strict bool) (*Service, *mockLedgerStore) {
	store := newMockLedgerStore()
	cfg := common.LedgerConfig{StrictTransferMatch: strict}
	svc := NewService(&mockStorageManager{ledger: store}, cfg, common.NewSilentLogger())
	return svc, store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedLinkedAccounts builds the two-account fixture: a current account and a
// prepaid card joined by one transfer with both legs present, plus an
// unrelated purchase on the card.
func seedLinkedAccounts(store *mockLedgerStore) (current, golf models.Account, day time.Time) {
	day = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	current = models.Account{ID: "acc-current", UserID: "test-user", Name: "Current Account", Type: models.AccountTypeCurrent, Balance: dec("100.00")}
	golf = models.Account{ID: "acc-golf", UserID: "test-user", Name: "Golf Club Bar Card", Type: models.AccountTypePrepaid, Balance: dec("47.50")}
	store.accounts[current.ID] = current
	store.accounts[golf.ID] = golf

	store.transfers["tr1"] = models.Transfer{
		ID: "tr1", UserID: "test-user",
		SourceID: current.ID, DestinationID: golf.ID,
		Amount: dec("100.00"), Date: day, Type: models.TransferTypeTopUp,
	}
	store.transactions["t1"] = models.Transaction{
		ID: "t1", UserID: "test-user", AccountID: current.ID,
		Amount: dec("-100.00"), Date: day, Description: "Transfer to Golf Club Bar Card",
	}
	store.transactions["t2"] = models.Transaction{
		ID: "t2", UserID: "test-user", AccountID: golf.ID,
		Amount: dec("100.00"), Date: day, Description: "Top up from Current Account",
	}
	store.transactions["t3"] = models.Transaction{
		ID: "t3", UserID: "test-user", AccountID: golf.ID, CategoryID: "cat-drinks",
		Amount: dec("-15.50"), Date: day, Description: "Drinks",
	}
	return current, golf, day
}

// --- CRUD tests ---

func TestCreateAccountValidation(t *testing.T) {
	svc, _ := testService(false)
	ctx := testContext()

	_, err := svc.CreateAccount(ctx, models.Account{Type: models.AccountTypeCurrent})
	assert.Error(t, err, "missing name should be rejected")

	_, err = svc.CreateAccount(ctx, models.Account{Name: "Main", Type: "offshore"})
	assert.Error(t, err, "unknown type should be rejected")

	created, err := svc.CreateAccount(ctx, models.Account{Name: "  Main  ", Type: models.AccountTypeCurrent, Balance: dec("10.00")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Main", created.Name)
	assert.Equal(t, "test-user", created.UserID)
}

func TestUpdateAccountUnknownIDReturnsNotFound(t *testing.T) {
	svc, _ := testService(false)

	_, err := svc.UpdateAccount(testContext(), models.Account{
		ID: "acc-missing", Name: "Ghost", Type: models.AccountTypeSavings,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateAccountPreservesCreatedAt(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.accounts["acc-1"] = models.Account{
		ID: "acc-1", UserID: "test-user", Name: "Old Name",
		Type: models.AccountTypeSavings, CreatedAt: created,
	}

	updated, err := svc.UpdateAccount(ctx, models.Account{
		ID: "acc-1", Name: "New Name", Type: models.AccountTypeSavings, Balance: dec("5.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "test-user", updated.UserID)
}

// --- Deletion impact tests ---

func TestGetDeletionImpactCounts(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()

	acc := models.Account{ID: "acc-1", UserID: "test-user", Name: "Main", Type: models.AccountTypeCurrent}
	other := models.Account{ID: "acc-2", UserID: "test-user", Name: "Savings", Type: models.AccountTypeSavings}
	store.accounts[acc.ID] = acc
	store.accounts[other.ID] = other

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		store.transactions[id] = models.Transaction{
			ID: id, UserID: "test-user", AccountID: acc.ID,
			Amount: dec("-10.00"), Date: day, Description: "Spend", CategoryID: "cat-1",
		}
	}
	store.transfers["tr-1"] = models.Transfer{
		ID: "tr-1", UserID: "test-user", SourceID: acc.ID, DestinationID: other.ID,
		Amount: dec("20.00"), Date: day,
	}

	impact, err := svc.GetDeletionImpact(ctx, acc.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, impact.TransactionCount)
	assert.Equal(t, 1, impact.TransferCount)
	assert.Equal(t, 0, impact.BNPLPlanCount)
	assert.Equal(t, 0, impact.ArrangementCount)
	assert.Equal(t, 6, impact.TotalImpactedItems)
	require.Len(t, impact.AffectedAccounts, 1)
	assert.Equal(t, other.ID, impact.AffectedAccounts[0].ID)
	assert.Contains(t, impact.Description, "Main")
	assert.Contains(t, impact.Description, "Savings")
}

func TestGetDeletionImpactIsReadOnly(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	_, err := svc.GetDeletionImpact(ctx, "acc-current")
	require.NoError(t, err)
	_, err = svc.GetDeletionImpact(ctx, "acc-current")
	require.NoError(t, err)

	assert.Len(t, store.accounts, 2)
	assert.Len(t, store.transactions, 3)
	assert.Len(t, store.transfers, 1)
	assert.Empty(t, store.cascades)
}

func TestGetDeletionImpactUnknownAccount(t *testing.T) {
	svc, _ := testService(false)
	_, err := svc.GetDeletionImpact(testContext(), "acc-missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// --- Cascade tests ---

func TestDeleteAccountRemovesCrossAccountLegs(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	_, golf, _ := seedLinkedAccounts(store)

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))

	// Transfer and both legs gone, including the credit leg in acc-golf.
	assert.NotContains(t, store.transfers, "tr1")
	assert.NotContains(t, store.transactions, "t1")
	assert.NotContains(t, store.transactions, "t2")
	assert.NotContains(t, store.accounts, "acc-current")

	// The counterparty account and its unrelated purchase survive untouched.
	assert.Contains(t, store.transactions, "t3")
	survivor, ok := store.accounts["acc-golf"]
	require.True(t, ok)
	assert.True(t, survivor.Balance.Equal(golf.Balance), "counterparty balance must not change")
}

func TestDeleteAccountLeavesUnrelatedDataIntact(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	bystander := models.Account{ID: "acc-bystander", UserID: "test-user", Name: "Bystander", Type: models.AccountTypeSavings}
	store.accounts[bystander.ID] = bystander
	store.transactions["tb"] = models.Transaction{
		ID: "tb", UserID: "test-user", AccountID: bystander.ID,
		Amount: dec("-9.99"), Date: time.Now(), Description: "Book", CategoryID: "cat-books",
	}
	store.plans["pb"] = models.BNPLPlan{ID: "pb", UserID: "test-user", AccountID: bystander.ID, Provider: "Klarna"}

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))

	assert.Contains(t, store.accounts, "acc-bystander")
	assert.Contains(t, store.transactions, "tb")
	assert.Contains(t, store.plans, "pb")
}

func TestDeleteAccountRemovesDependentPlansAndArrangements(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()

	acc := models.Account{ID: "acc-1", UserID: "test-user", Name: "Card", Type: models.AccountTypeCredit}
	store.accounts[acc.ID] = acc
	store.plans["plan-1"] = models.BNPLPlan{ID: "plan-1", UserID: "test-user", AccountID: acc.ID, Provider: "Klarna"}
	store.arrangements["arr-1"] = models.FlexibleArrangement{ID: "arr-1", UserID: "test-user", AccountID: acc.ID, Kind: models.ArrangementFamilyLoan}

	require.NoError(t, svc.DeleteAccount(ctx, acc.ID))

	assert.Empty(t, store.plans)
	assert.Empty(t, store.arrangements)
	assert.Empty(t, store.accounts)
}

func TestDeleteAccountIsIdempotent(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))
	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"), "second delete should be a no-op")

	assert.Contains(t, store.accounts, "acc-golf")
	assert.Contains(t, store.transactions, "t3")
}

func TestDeleteAccountFromDestinationSide(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	// Deleting the destination account also removes the debit leg in the
	// source account.
	require.NoError(t, svc.DeleteAccount(ctx, "acc-golf"))

	assert.NotContains(t, store.transfers, "tr1")
	assert.NotContains(t, store.transactions, "t1")
	assert.NotContains(t, store.transactions, "t2")
	assert.NotContains(t, store.transactions, "t3")
	assert.Contains(t, store.accounts, "acc-current")
}

func TestDeleteAccountWithMissingLeg(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	// One leg was removed by hand; the cascade handles the gap.
	delete(store.transactions, "t2")

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))

	assert.NotContains(t, store.transfers, "tr1")
	assert.NotContains(t, store.transactions, "t1")
	assert.Contains(t, store.transactions, "t3")
}

func TestDeleteAccountStrictMatchSkipsUnhintedLeg(t *testing.T) {
	svc, store := testService(true)
	ctx := testContext()
	seedLinkedAccounts(store)

	// An uncategorized row matching amount and day but without transfer
	// wording. Lenient matching would pair it; strict must not.
	store.transactions["t2"] = models.Transaction{
		ID: "t2", UserID: "test-user", AccountID: "acc-golf",
		Amount: dec("100.00"), Date: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Description: "Cash deposit",
	}

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))

	assert.Contains(t, store.transactions, "t2", "strict match must leave the unhinted row")
	assert.NotContains(t, store.transactions, "t1")
	assert.NotContains(t, store.transfers, "tr1")
}

func TestCascadePlanOrderSnapshotsBeforeDeletion(t *testing.T) {
	svc, store := testService(false)
	ctx := testContext()
	seedLinkedAccounts(store)

	require.NoError(t, svc.DeleteAccount(ctx, "acc-current"))

	require.Len(t, store.cascades, 1)
	plan := store.cascades[0]
	assert.Equal(t, "acc-current", plan.AccountID)
	assert.ElementsMatch(t, []string{"t1", "t2"}, plan.LegIDs)
	assert.Equal(t, []string{"tr1"}, plan.TransferIDs)
	assert.Empty(t, plan.TransactionIDs, "legs must not be double-counted as direct transactions")
}
