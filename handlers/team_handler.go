package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-platform/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: ts,
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.teamService.ListTeams(r.Context())
	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.TeamInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, team, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteTeam удаляет команду каскадно: из участников турниров и вместе с её матчами.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deletion, err := h.teamService.DeleteTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"ok":                  true,
		"message":             "team deleted",
		"teamId":              deletion.TeamID,
		"affectedTournaments": deletion.AffectedTournaments,
		"removedMatches":      deletion.RemovedMatches,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
