package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Olzhas-T/contest-system/middleware"
	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/services"
)

type TeamHandler struct {
	lifecycle services.TeamLifecycleService
}

func NewTeamHandler(lifecycle services.TeamLifecycleService) *TeamHandler {
	return &TeamHandler{
		lifecycle: lifecycle,
	}
}

type enterCompetitionRequest struct {
	CoachID            int                     `json:"coach_id"`
	SiteID             int                     `json:"site_id"`
	TeamName           string                  `json:"team_name"`
	Remote             bool                    `json:"remote"`
	DegreeYear         int                     `json:"degree_year"`
	Rating             *int                    `json:"rating"`
	CompletedCourses   []models.CourseCategory `json:"completed_courses"`
	NationalPrize      bool                    `json:"national_prize"`
	InternationalPrize bool                    `json:"international_prize"`
	PastRegional       bool                    `json:"past_regional"`
}

func (h *TeamHandler) EnterCompetition(w http.ResponseWriter, r *http.Request) {
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

	var req enterCompetitionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.CoachID <= 0 || req.SiteID <= 0 {
		badRequestResponse(w, r, errors.New("coach_id and site_id are required"))
		return
	}

	team, err := h.lifecycle.EnterCompetition(r.Context(), services.EnterCompetitionInput{
		UserID:                currentUserID,
		CompetitionID:         competitionID,
		CoachID:               req.CoachID,
		SiteID:                req.SiteID,
		TeamName:              req.TeamName,
		Remote:                req.Remote,
		DegreeYear:            req.DegreeYear,
		Rating:                req.Rating,
		CompletedCourses:      req.CompletedCourses,
		HasNationalPrize:      req.NationalPrize,
		HasInternationalPrize: req.InternationalPrize,
		PastRegional:          req.PastRegional,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
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

	team, err := h.lifecycle.GetTeamByMember(r.Context(), currentUserID, competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetJoinCode(w http.ResponseWriter, r *http.Request) {
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

	code, err := h.lifecycle.TeamJoinCode(r.Context(), currentUserID, competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"code": code}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
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
		Code string `json:"code"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Code == "" {
		badRequestResponse(w, r, errors.New("code is required"))
		return
	}

	team, err := h.lifecycle.JoinByCode(r.Context(), currentUserID, competitionID, req.Code)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.lifecycle.Withdraw(r.Context(), currentUserID, competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"withdrawal": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) RequestNameChange(w http.ResponseWriter, r *http.Request) {
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
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.lifecycle.RequestNameChange(r.Context(), currentUserID, competitionID, req.Name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *TeamHandler) RequestSiteChange(w http.ResponseWriter, r *http.Request) {
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
		SiteID int `json:"site_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.SiteID <= 0 {
		badRequestResponse(w, r, errors.New("site_id is required"))
		return
	}

	if err := h.lifecycle.RequestSiteChange(r.Context(), currentUserID, competitionID, req.SiteID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.lifecycle.UploadTeamLogo(r.Context(), currentUserID, competitionID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
