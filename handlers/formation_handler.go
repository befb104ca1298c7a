package handlers

import (
	"net/http"

	"github.com/Olzhas-T/contest-system/middleware"
	"github.com/Olzhas-T/contest-system/services"
)

type FormationHandler struct {
	formationService services.TeamFormationService
}

func NewFormationHandler(fs services.TeamFormationService) *FormationHandler {
	return &FormationHandler{
		formationService: fs,
	}
}

// RunFormation запускает формирование команд для тренера соревнования.
func (h *FormationHandler) RunFormation(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	coachID, err := getIDFromURL(r, "coachID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	summary, err := h.formationService.RunFormation(r.Context(), currentUserID, competitionID, coachID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"formation": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
