package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"wingman_server/services"
)

// SeedController exposes the demo-data endpoint, development only
type SeedController struct {
	SeedService *services.SeedService
}

// NewSeedController creates a new SeedController instance
func NewSeedController(seedService *services.SeedService) *SeedController {
	return &SeedController{SeedService: seedService}
}

// SeedDemoData populates demo profiles and delegations for the caller
func (c *SeedController) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	if os.Getenv("APP_ENV") != "development" {
		writeError(w, http.StatusForbidden, "Only available in development")
		return
	}

	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.UserID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}

	result, err := c.SeedService.SeedDemoData(r.Context(), request.UserID)
	if err != nil {
		log.Println("Error seeding demo data:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
