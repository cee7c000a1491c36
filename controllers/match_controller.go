package controllers

import (
	"log"
	"net/http"

	"wingman_server/services"
)

// MatchController handles HTTP requests for match listings
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// GetMatches lists an owner's matches; the requester must be the owner or
// one of their active delegates
func (c *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	requesterID := r.URL.Query().Get("requesterId")
	if requesterID == "" {
		writeError(w, http.StatusUnauthorized, "requesterId is required")
		return
	}
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "ownerId is required")
		return
	}

	matches, err := c.MatchService.GetMatchesForOwner(r.Context(), ownerID, requesterID)
	if err != nil {
		log.Println("Error fetching matches:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
