package server

import (
	"net/http"

	"github.com/jcallahan/pocketledger/internal/models"
)

// handleCategories handles GET /api/categories and POST /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cats, err := s.app.Catalog.ListCategories(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": cats})

	case http.MethodPost:
		var cat models.Category
		if !DecodeJSON(w, r, &cat) {
			return
		}
		created, err := s.app.Catalog.AddCategory(r.Context(), cat)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleCategoryByID handles DELETE /api/categories/{id}.
func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	id := PathParam(r, "/api/categories/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "category id is required in path")
		return
	}
	if err := s.app.Catalog.RemoveCategory(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleBudgets handles GET /api/budgets and POST /api/budgets.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		budgets, err := s.app.Catalog.ListBudgets(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"budgets": budgets})

	case http.MethodPost:
		var budget models.Budget
		if !DecodeJSON(w, r, &budget) {
			return
		}
		created, err := s.app.Catalog.AddBudget(r.Context(), budget)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleBudgetByID handles DELETE /api/budgets/{id}.
func (s *Server) handleBudgetByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	id := PathParam(r, "/api/budgets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "budget id is required in path")
		return
	}
	if err := s.app.Catalog.RemoveBudget(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleEvents handles GET /api/events and POST /api/events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		events, err := s.app.Catalog.ListEvents(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events})

	case http.MethodPost:
		var event models.Event
		if !DecodeJSON(w, r, &event) {
			return
		}
		created, err := s.app.Catalog.AddEvent(r.Context(), event)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleEventByID handles DELETE /api/events/{id}.
func (s *Server) handleEventByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	id := PathParam(r, "/api/events/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "event id is required in path")
		return
	}
	if err := s.app.Catalog.RemoveEvent(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
