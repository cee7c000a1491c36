package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wingman_server/services"
)

// DelegationController handles HTTP requests for the delegation registry
type DelegationController struct {
	DelegationService *services.DelegationService
}

// NewDelegationController creates a new DelegationController instance
func NewDelegationController(delegationService *services.DelegationService) *DelegationController {
	return &DelegationController{DelegationService: delegationService}
}

// ListDelegations returns both sides of a user's active delegations
func (c *DelegationController) ListDelegations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}

	list, err := c.DelegationService.ListDelegations(r.Context(), userID)
	if err != nil {
		log.Println("Error listing delegations:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// RevokeDelegation transitions a delegation to revoked, owner only
func (c *DelegationController) RevokeDelegation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		DelegationID string `json:"delegationId"`
		RequesterID  string `json:"requesterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.RequesterID == "" {
		writeError(w, http.StatusUnauthorized, "requesterId is required")
		return
	}
	if request.DelegationID == "" {
		writeError(w, http.StatusBadRequest, "delegationId is required")
		return
	}

	if err := c.DelegationService.RevokeDelegation(r.Context(), request.DelegationID, request.RequesterID); err != nil {
		log.Println("Error revoking delegation:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Delegation revoked"})
}
