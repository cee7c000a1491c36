package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wingman_server/services"

	"github.com/gorilla/mux"
)

// ProfileController handles identity resolution and profile requests
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController creates a new ProfileController instance
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// ResolveProfile maps a verified identity (userId + email) onto a profile
// row, creating it on first sight. A netid bound to a different account is
// a conflict and writes nothing.
func (c *ProfileController) ResolveProfile(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.UserID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}
	if request.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	profile, err := c.ProfileService.ResolveOrCreateProfile(r.Context(), request.UserID, request.Email)
	if err != nil {
		log.Println("Error resolving profile:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":            profile,
		"onboardingComplete": profile.IsComplete(),
	})
}

// GetProfile fetches a profile with its photos
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, photos, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"photos":  photos,
	})
}

// UpdateProfile applies an onboarding or settings edit
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := update.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	profile, err := c.ProfileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		log.Println("Error updating profile:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}
