package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wingman_server/services"
)

// SwipeController handles HTTP requests for the swipe ledger
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(swipeService *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: swipeService}
}

// RecordSwipe stores a delegate's decision for an owner and reports whether
// it completed a match
func (c *SwipeController) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OwnerID    string `json:"ownerId"`
		DelegateID string `json:"delegateId"`
		TargetID   string `json:"targetId"`
		Direction  string `json:"direction"`
		Tag        string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.DelegateID == "" {
		writeError(w, http.StatusUnauthorized, "delegateId is required")
		return
	}
	if request.OwnerID == "" || request.TargetID == "" || request.Direction == "" {
		writeError(w, http.StatusBadRequest, "ownerId, targetId and direction are required")
		return
	}
	if len(request.Tag) > 50 {
		writeError(w, http.StatusUnprocessableEntity, "tag must be at most 50 characters")
		return
	}

	result, err := c.SwipeService.RecordSwipe(r.Context(), request.OwnerID, request.DelegateID, request.TargetID, request.Direction, request.Tag)
	if err != nil {
		log.Println("Error recording swipe:", err)
		writeServiceError(w, err)
		return
	}

	if result.AlreadySwiped {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":       "Already swiped on this profile",
			"alreadySwiped": true,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matched": result.Matched})
}
