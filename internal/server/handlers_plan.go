package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jcallahan/pocketledger/internal/models"
)

// handlePlans handles GET /api/plans (list) and POST /api/plans (create).
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		plans, err := s.app.Plans.ListBNPLPlans(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})

	case http.MethodPost:
		var plan models.BNPLPlan
		if !DecodeJSON(w, r, &plan) {
			return
		}
		created, err := s.app.Plans.AddBNPLPlan(r.Context(), plan)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePlanPay handles POST /api/plans/{id}/pay — records one installment.
func (s *Server) handlePlanPay(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	plan, err := s.app.Plans.RecordInstallmentPaid(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, plan)
}

// handleArrangements handles GET /api/arrangements (list) and
// POST /api/arrangements (create).
func (s *Server) handleArrangements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		arrs, err := s.app.Plans.ListArrangements(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"arrangements": arrs})

	case http.MethodPost:
		var arr models.FlexibleArrangement
		if !DecodeJSON(w, r, &arr) {
			return
		}
		created, err := s.app.Plans.AddArrangement(r.Context(), arr)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleArrangementPay handles POST /api/arrangements/{id}/pay.
func (s *Server) handleArrangementPay(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	arr, err := s.app.Plans.RecordArrangementPayment(r.Context(), id, body.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, arr)
}
