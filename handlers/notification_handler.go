package handlers

import (
	"net/http"

	"github.com/Olzhas-T/contest-system/middleware"
	"github.com/Olzhas-T/contest-system/repositories"
)

type NotificationHandler struct {
	notifRepo repositories.NotificationRepository
}

func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		notifRepo: notifRepo,
	}
}

func (h *NotificationHandler) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
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

	notifications, err := h.notifRepo.ListByUser(r.Context(), currentUserID, competitionID)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"notifications": notifications}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
