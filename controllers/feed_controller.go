package controllers

import (
	"log"
	"net/http"

	"wingman_server/services"
)

// FeedController handles HTTP requests for the candidate feed
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// GetFeed returns the candidates a delegate can swipe through for an owner
func (c *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	delegateID := r.URL.Query().Get("delegateId")
	if delegateID == "" {
		writeError(w, http.StatusUnauthorized, "delegateId is required")
		return
	}
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "ownerId is required")
		return
	}

	candidates, err := c.FeedService.GetFeed(r.Context(), ownerID, delegateID)
	if err != nil {
		log.Println("Error fetching feed:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}
