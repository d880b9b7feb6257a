package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/models"
	"github.com/jcallahan/pocketledger/internal/storage"
)

func testContext() context.Context {
	uc := &common.UserContext{UserID: "test-user"}
	return common.WithUserContext(context.Background(), uc)
}

func testService(t *testing.T) *Service {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	sm, err := storage.NewStorageManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { sm.Close() })
	return NewService(sm, common.NewSilentLogger())
}

func TestCategoryLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := testContext()

	_, err := svc.AddCategory(ctx, models.Category{Name: "   "})
	assert.Error(t, err, "blank name rejected")

	created, err := svc.AddCategory(ctx, models.Category{Name: "  Groceries  "})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Name)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	require.NoError(t, svc.RemoveCategory(ctx, created.ID))
	cats, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestBudgetValidation(t *testing.T) {
	svc := testService(t)
	ctx := testContext()

	_, err := svc.AddBudget(ctx, models.Budget{MonthlyLimit: decimal.RequireFromString("400.00")})
	assert.Error(t, err, "missing category rejected")

	_, err = svc.AddBudget(ctx, models.Budget{CategoryID: "cat-1"})
	assert.Error(t, err, "non-positive limit rejected")

	created, err := svc.AddBudget(ctx, models.Budget{
		CategoryID: "cat-1", MonthlyLimit: decimal.RequireFromString("400.00"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestEventLifecycle(t *testing.T) {
	svc := testService(t)
	ctx := testContext()

	_, err := svc.AddEvent(ctx, models.Event{Name: "Holiday"})
	assert.Error(t, err, "missing date rejected")

	created, err := svc.AddEvent(ctx, models.Event{
		Name: "Holiday", Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Budget: decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, svc.RemoveEvent(ctx, created.ID))
	events, err = svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}
