package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-platform/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	matchService      services.MatchService
}

func NewTournamentHandler(ts services.TournamentService, ms services.MatchService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		matchService:      ms,
	}
}

// ListHandler обрабатывает GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments := h.tournamentService.ListTournaments(r.Context())
	if err := writeJSON(w, http.StatusOK, tournaments, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatchesHandler обрабатывает GET /tournaments/{tournamentID}/matches
func (h *TournamentHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), services.MatchFilter{TournamentID: id})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RoundRobinHandler обрабатывает POST /tournaments/{tournamentID}/round-robin.
// Тело необязательно.
func (h *TournamentHandler) RoundRobinHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RoundRobinInput
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.GenerateRoundRobin(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
