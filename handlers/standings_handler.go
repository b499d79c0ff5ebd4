package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/scoring"
	"github.com/S-Matheka/patrons-cup-live-sub000/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetByDivision serves the cached table for a division.
func (h *StandingsHandler) GetByDivision(w http.ResponseWriter, r *http.Request) {
	division, ok := models.ParseDivision(chi.URLParam(r, "division"))
	if !ok {
		badRequestResponse(w, r, errors.New("unknown division"))
		return
	}

	standings, err := h.standingsService.ListByDivision(r.Context(), division)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLiveByDivision recomputes the table from the current snapshot. The
// policy query parameter chooses how in-progress pairings score; it defaults
// to the official view.
func (h *StandingsHandler) GetLiveByDivision(w http.ResponseWriter, r *http.Request) {
	division, ok := models.ParseDivision(chi.URLParam(r, "division"))
	if !ok {
		badRequestResponse(w, r, errors.New("unknown division"))
		return
	}

	policy := scoring.IncludeNone
	switch raw := r.URL.Query().Get("policy"); raw {
	case "", string(scoring.IncludeNone):
	case string(scoring.IncludeLeaderTakesAll):
		policy = scoring.IncludeLeaderTakesAll
	case string(scoring.IncludeFractionalByHoleLead):
		policy = scoring.IncludeFractionalByHoleLead
	default:
		badRequestResponse(w, r, errors.New("unknown standings policy"))
		return
	}

	standings, err := h.standingsService.ComputeDivision(r.Context(), division, policy)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Refresh forces a recomputation, of one division or of all of them.
func (h *StandingsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if raw := chi.URLParam(r, "division"); raw != "" {
		division, ok := models.ParseDivision(raw)
		if !ok {
			badRequestResponse(w, r, errors.New("unknown division"))
			return
		}
		if err := h.standingsService.RefreshDivision(r.Context(), division); err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.standingsService.RefreshAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
