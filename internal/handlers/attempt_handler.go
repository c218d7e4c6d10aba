package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"literacylab/internal/grading"
	"literacylab/internal/models"
	"literacylab/internal/service"
)

// AttemptHandler handles practice attempt HTTP requests
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new attempt handler
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

type startAttemptRequest struct {
	ContentID string `json:"content_id"`
}

type submitAttemptRequest struct {
	Answers map[string]grading.Answer `json:"answers"`
}

// Start records that the user began a practice set
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	activity, err := h.attemptService.Start(user.ID, req.ContentID)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondError(w, http.StatusNotFound, "Practice content not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to start attempt", "Attempt start error", err)
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

// Submit grades the user's answers for an attempt
func (h *AttemptHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	result, err := h.attemptService.Submit(user.ID, r.PathValue("id"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			respondError(w, http.StatusNotFound, "Attempt not found", "", nil)
		case errors.Is(err, service.ErrAttemptNotOwned):
			respondError(w, http.StatusForbidden, "Attempt belongs to another user", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Failed to grade attempt", "Attempt submit error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Results returns the stored outcome of a completed attempt
func (h *AttemptHandler) Results(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	activity, err := h.attemptService.Results(user.ID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			respondError(w, http.StatusNotFound, "Attempt not found", "", nil)
		case errors.Is(err, service.ErrAttemptNotOwned):
			respondError(w, http.StatusForbidden, "Attempt belongs to another user", "", nil)
		case errors.Is(err, service.ErrAttemptNotGraded):
			respondError(w, http.StatusConflict, "Attempt has not been submitted yet", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Failed to load attempt", "Attempt lookup error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Recent returns the user's most recent attempts
func (h *AttemptHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	user := GetUserFromContext(r.Context())
	activities, err := h.attemptService.RecentActivity(user.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load activity", "Activity list error", err)
		return
	}
	if activities == nil {
		activities = []models.UserActivity{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"activity": activities})
}

// Stats returns the user's aggregate stats
func (h *AttemptHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	stats, err := h.attemptService.Stats(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load stats", "Stats lookup error", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
