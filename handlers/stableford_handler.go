package handlers

import (
	"net/http"

	"github.com/S-Matheka/patrons-cup-live-sub000/services"
)

type StablefordHandler struct {
	stablefordService services.StablefordService
}

func NewStablefordHandler(stablefordService services.StablefordService) *StablefordHandler {
	return &StablefordHandler{stablefordService: stablefordService}
}

func (h *StablefordHandler) OpenCard(w http.ResponseWriter, r *http.Request) {
	playerID, err := idParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := idParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.stablefordService.OpenCard(r.Context(), playerID, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StablefordHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	playerID, err := idParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := idParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.stablefordService.GetCard(r.Context(), playerID, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StablefordHandler) EnterGross(w http.ResponseWriter, r *http.Request) {
	playerID, err := idParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := idParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GrossInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.stablefordService.EnterGross(r.Context(), playerID, round, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"card": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StablefordHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stablefordService.Leaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StablefordHandler) TeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stablefordService.TeamLeaderboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StablefordHandler) RoundLeaderboard(w http.ResponseWriter, r *http.Request) {
	round, err := idParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.stablefordService.RoundLeaderboard(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
