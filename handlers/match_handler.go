package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type matchResultResponse struct {
	models.MatchWithTeams
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context(), services.MatchFilter{})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult обрабатывает POST /match-result {matchId, scoreA, scoreB}
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := matchResultResponse{MatchWithTeams: *match, Success: true}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveResult обрабатывает DELETE /match-result/{matchID}
func (h *MatchHandler) RemoveResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RemoveResult(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := matchResultResponse{
		MatchWithTeams: *match,
		Message:        "match result removed",
		Success:        true,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch обрабатывает DELETE /match/{matchID}
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true, "message": "match deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
