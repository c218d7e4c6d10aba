package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"literacylab/internal/service"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the authenticated user's profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load profile", "Profile lookup error", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Update writes the authenticated user's profile fields
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	profile, err := h.profileService.UpdateProfile(user.ID, update)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(w, http.StatusNotFound, "Profile not found", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update profile", "Profile update error", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
