package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wingman_server/services"
)

// InviteController handles HTTP requests for invite codes
type InviteController struct {
	InviteService *services.InviteService
}

// NewInviteController creates a new InviteController instance
func NewInviteController(inviteService *services.InviteService) *InviteController {
	return &InviteController{InviteService: inviteService}
}

// IssueInvite creates a fresh single-use code for the owner
func (c *InviteController) IssueInvite(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OwnerID string `json:"ownerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.OwnerID == "" {
		writeError(w, http.StatusUnauthorized, "ownerId is required")
		return
	}

	invite, err := c.InviteService.IssueInvite(r.Context(), request.OwnerID)
	if err != nil {
		log.Println("Error issuing invite:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"invite": invite})
}

// RedeemInvite converts a code into an active delegation for the redeemer
func (c *InviteController) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Code       string `json:"code"`
		RedeemerID string `json:"redeemerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.RedeemerID == "" {
		writeError(w, http.StatusUnauthorized, "redeemerId is required")
		return
	}
	if request.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	owner, err := c.InviteService.RedeemInvite(r.Context(), request.Code, request.RedeemerID)
	if err != nil {
		log.Println("Error redeeming invite:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"owner": owner})
}
