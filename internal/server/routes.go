package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jcallahan/pocketledger/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Accounts — includes the deletion impact preview and cascade
	mux.HandleFunc("/api/accounts/", s.routeAccounts)
	mux.HandleFunc("/api/accounts", s.handleAccounts)

	// Transactions and transfers
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transfers", s.handleTransfers)

	// BNPL plans and arrangements
	mux.HandleFunc("/api/plans/", s.routePlans)
	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/arrangements/", s.routeArrangements)
	mux.HandleFunc("/api/arrangements", s.handleArrangements)

	// Reference data
	mux.HandleFunc("/api/categories/", s.handleCategoryByID)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/budgets/", s.handleBudgetByID)
	mux.HandleFunc("/api/budgets", s.handleBudgets)
	mux.HandleFunc("/api/events/", s.handleEventByID)
	mux.HandleFunc("/api/events", s.handleEvents)

	// Summaries
	mux.HandleFunc("/api/summary/networth", s.handleNetWorth)
	mux.HandleFunc("/api/summary/spend", s.handleMonthlySpend)
	mux.HandleFunc("/api/summary/spend/chart", s.handleSpendChart)
	mux.HandleFunc("/api/summary/upcoming", s.handleUpcomingPayments)
}

// routeAccounts dispatches /api/accounts/{id} and /api/accounts/{id}/impact.
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	if path == "" {
		s.handleAccounts(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleAccountByID(w, r, id)
	case "impact":
		s.handleAccountImpact(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routePlans dispatches /api/plans/{id}/pay.
func (s *Server) routePlans(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 2 && parts[1] == "pay" {
		s.handlePlanPay(w, r, parts[0])
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// routeArrangements dispatches /api/arrangements/{id}/pay.
func (s *Server) routeArrangements(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/arrangements/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 2 && parts[1] == "pay" {
		s.handleArrangementPay(w, r, parts[0])
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":           s.app.Config.Environment,
		"storage_path":          s.app.Config.Storage.Path,
		"logging_level":         s.app.Config.Logging.Level,
		"strict_transfer_match": s.app.Config.Ledger.StrictTransferMatch,
		"upcoming_window_days":  s.app.Config.Ledger.UpcomingWindowDays,
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
