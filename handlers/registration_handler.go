package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-platform/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register обрабатывает POST /register {tournamentId, team:{name, members?, meta?}}
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.registrationService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, registration, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
