package server

import (
	"net/http"

	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/models"
)

// handleTransactions handles GET /api/transactions (list, optional
// ?account_id= filter) and POST /api/transactions (create).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		accountID := r.URL.Query().Get("account_id")
		txs, err := s.app.Transactions.ListTransactions(r.Context(), accountID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})

	case http.MethodPost:
		var tx models.Transaction
		if !DecodeJSON(w, r, &tx) {
			return
		}
		created, err := s.app.Transactions.AddTransaction(r.Context(), tx)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleTransactionByID handles PUT and DELETE /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var update models.Transaction
		if !DecodeJSON(w, r, &update) {
			return
		}
		updated, err := s.app.Transactions.UpdateTransaction(r.Context(), id, update)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Transactions.RemoveTransaction(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// handleTransfers handles GET /api/transfers (list) and POST /api/transfers
// (create a transfer plus its two ledger legs).
func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		transfers, err := s.app.Transactions.ListTransfers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"transfers": transfers})

	case http.MethodPost:
		var req interfaces.TransferRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.Transactions.AddTransfer(r.Context(), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}
