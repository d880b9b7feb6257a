package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jcallahan/pocketledger/internal/models"
)

// writeServiceError maps service-layer errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		WriteError(w, http.StatusConflict, err.Error())
	case strings.HasPrefix(err.Error(), "invalid"):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleAccounts handles GET /api/accounts (list) and POST /api/accounts (create).
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.Accounts.ListAccounts(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})

	case http.MethodPost:
		var account models.Account
		if !DecodeJSON(w, r, &account) {
			return
		}
		created, err := s.app.Accounts.CreateAccount(r.Context(), account)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAccountByID handles GET, PUT, and DELETE /api/accounts/{id}.
func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		account, err := s.app.Accounts.GetAccount(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut:
		var account models.Account
		if !DecodeJSON(w, r, &account) {
			return
		}
		account.ID = id
		updated, err := s.app.Accounts.UpdateAccount(r.Context(), account)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Accounts.DeleteAccount(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleAccountImpact handles GET /api/accounts/{id}/impact — a read-only
// preview of what deleting the account would remove.
func (s *Server) handleAccountImpact(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	impact, err := s.app.Accounts.GetDeletionImpact(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, impact)
}
