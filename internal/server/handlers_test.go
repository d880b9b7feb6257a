package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallahan/pocketledger/internal/app"
	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/models"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	cfg.Ledger.SeedDemoData = false

	a, err := app.NewAppWithConfig(cfg, common.NewSilentLogger())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return NewServer(a)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthAndVersion(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAccountCRUDOverHTTP(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name": "Current Account", "type": "current", "balance": "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Account
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPut, "/api/accounts/"+created.ID, map[string]interface{}{
		"name": "Main Account", "type": "current",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Accounts []models.Account `json:"accounts"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Accounts, 1)
	assert.Equal(t, "Main Account", list.Accounts[0].Name)
}

func TestAccountValidationOverHTTP(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name": "", "type": "current",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/acc-ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPut, "/api/accounts/acc-ghost", map[string]interface{}{
		"name": "Ghost", "type": "current",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletionImpactAndCascadeOverHTTP(t *testing.T) {
	srv := testServer(t)

	mkAccount := func(name string) models.Account {
		rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]interface{}{
			"name": name, "type": "current", "balance": "100.00",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var acc models.Account
		decodeBody(t, rec, &acc)
		return acc
	}

	current := mkAccount("Current Account")
	golf := mkAccount("Golf Club Bar Card")

	rec := doJSON(t, srv, http.MethodPost, "/api/transfers", map[string]interface{}{
		"source_id":      current.ID,
		"destination_id": golf.ID,
		"amount":         "100.00",
		"date":           "2026-03-10T14:00:00Z",
		"type":           "top_up",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions", map[string]interface{}{
		"account_id":  golf.ID,
		"amount":      "-15.50",
		"date":        "2026-03-11T18:00:00Z",
		"description": "Drinks",
		"category_id": "cat-drinks",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Impact preview: 1 direct leg + 1 transfer, golf listed as affected.
	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/accounts/%s/impact", current.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var impact models.DeletionImpact
	decodeBody(t, rec, &impact)
	assert.Equal(t, 1, impact.TransactionCount)
	assert.Equal(t, 1, impact.TransferCount)
	assert.Equal(t, 2, impact.TotalImpactedItems)
	require.Len(t, impact.AffectedAccounts, 1)
	assert.Equal(t, golf.ID, impact.AffectedAccounts[0].ID)

	// Cascade: current account and both legs go, golf and Drinks survive.
	rec = doJSON(t, srv, http.MethodDelete, "/api/accounts/"+current.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+current.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/transfers", nil)
	var transfers struct {
		Transfers []models.Transfer `json:"transfers"`
	}
	decodeBody(t, rec, &transfers)
	assert.Empty(t, transfers.Transfers)

	rec = doJSON(t, srv, http.MethodGet, "/api/transactions", nil)
	var txs struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	decodeBody(t, rec, &txs)
	require.Len(t, txs.Transactions, 1)
	assert.Equal(t, "Drinks", txs.Transactions[0].Description)

	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+golf.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserScopingViaHeader(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Alice's Account", "type": "current",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewReader(body))
	req.Header.Set("X-Pocket-User-ID", "alice")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Default user sees nothing.
	rec2 := doJSON(t, srv, http.MethodGet, "/api/accounts", nil)
	var list struct {
		Accounts []models.Account `json:"accounts"`
	}
	decodeBody(t, rec2, &list)
	assert.Empty(t, list.Accounts)

	// Alice sees her account.
	req = httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("X-Pocket-User-ID", "alice")
	rec3 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec3, req)
	decodeBody(t, rec3, &list)
	assert.Len(t, list.Accounts, 1)
}

func TestCorrelationIDHeader(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec2 := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec2, req)
	assert.Equal(t, "req-42", rec2.Header().Get("X-Correlation-ID"))
}

func TestInvalidJSONRejected(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/accounts", map[string]interface{}{
		"name": "Main", "type": "current", "balance": "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var acc models.Account
	decodeBody(t, rec, &acc)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions", map[string]interface{}{
		"account_id": acc.ID, "amount": "-25.00",
		"date": time.Now().AddDate(0, 0, -1).Format(time.RFC3339), "description": "Groceries",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary/networth", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary/spend?year=2026&month=3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary/spend?month=13", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary/upcoming", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary/spend/chart?months=3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
