package server

import (
	"net/http"
	"strconv"
	"time"
)

// handleNetWorth handles GET /api/summary/networth.
func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := s.app.Summaries.NetWorth(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handleMonthlySpend handles GET /api/summary/spend?year=2026&month=8.
// Defaults to the current month.
func (s *Server) handleMonthlySpend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = v
	}
	if m := r.URL.Query().Get("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			WriteError(w, http.StatusBadRequest, "invalid month")
			return
		}
		month = time.Month(v)
	}

	summary, err := s.app.Summaries.MonthlySpend(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// handleSpendChart handles GET /api/summary/spend/chart?months=6 and
// returns a PNG bar chart.
func (s *Server) handleSpendChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	months := 6
	if m := r.URL.Query().Get("months"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 2 {
			WriteError(w, http.StatusBadRequest, "invalid months (minimum 2)")
			return
		}
		months = v
	}

	png, err := s.app.Summaries.RenderSpendChart(r.Context(), months)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleUpcomingPayments handles GET /api/summary/upcoming.
func (s *Server) handleUpcomingPayments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	payments, err := s.app.Summaries.UpcomingPayments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}
