package handlers

import (
	"net/http"

	"github.com/Olzhas-T/contest-system/middleware"
	"github.com/Olzhas-T/contest-system/services"
)

// AdminHandler обслуживает пакетные операции тренеров, администраторов и
// координаторов площадок.
type AdminHandler struct {
	lifecycle services.TeamLifecycleService
}

func NewAdminHandler(lifecycle services.TeamLifecycleService) *AdminHandler {
	return &AdminHandler{
		lifecycle: lifecycle,
	}
}

type resolveRequest struct {
	Approve []int `json:"approve"`
	Reject  []int `json:"reject"`
}

func (h *AdminHandler) ResolveNameChanges(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var req resolveRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.lifecycle.ResolveNameChanges(r.Context(), currentUserID, competitionID, req.Approve, req.Reject); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ResolveSiteChanges(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var req resolveRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.lifecycle.ResolveSiteChanges(r.Context(), currentUserID, competitionID, req.Approve, req.Reject); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) AssignSeats(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var req struct {
		Assignments []services.SeatAssignment `json:"assignments"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.lifecycle.AssignSeats(r.Context(), currentUserID, competitionID, req.Assignments)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type teamBatchRequest struct {
	TeamIDs []int `json:"team_ids"`
}

func (h *AdminHandler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var req teamBatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.lifecycle.ApproveTeamRegistration(r.Context(), currentUserID, competitionID, req.TeamIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) RegisterTeams(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var req teamBatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.lifecycle.RegisterTeams(r.Context(), currentUserID, competitionID, req.TeamIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
