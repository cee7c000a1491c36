package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wingman_server/services"
)

// PhotoController handles photo slot metadata and presigned S3 URLs
type PhotoController struct {
	PhotoService *services.PhotoService
}

// NewPhotoController creates a new PhotoController instance
func NewPhotoController(photoService *services.PhotoService) *PhotoController {
	return &PhotoController{PhotoService: photoService}
}

// UploadPhoto reserves a slot and hands back a presigned PUT URL for the
// bytes. The client uploads directly to S3 afterwards.
func (c *PhotoController) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID     string `json:"userId"`
		Position   int    `json:"position"`
		FileName   string `json:"fileName"`
		FileType   string `json:"fileType"`
		PromptText string `json:"promptText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.UserID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}
	if request.FileName == "" || request.FileType == "" {
		writeError(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	storagePath := services.NewStoragePath(request.UserID, request.Position, request.FileName)
	uploadURL, err := services.GenerateUploadURL(storagePath, request.FileType)
	if err != nil {
		log.Println("Error generating upload URL:", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	photo, err := c.PhotoService.SavePhoto(r.Context(), request.UserID, request.Position, storagePath, request.PromptText)
	if err != nil {
		log.Println("Error saving photo:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploadUrl": uploadURL,
		"photo":     photo,
	})
}

// ReorderPhotos rewrites slot positions and prompt text
func (c *PhotoController) ReorderPhotos(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string                    `json:"userId"`
		Photos []services.PhotoPlacement `json:"photos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.UserID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}
	if len(request.Photos) == 0 {
		writeError(w, http.StatusBadRequest, "photos are required")
		return
	}

	if err := c.PhotoService.ReorderPhotos(r.Context(), request.UserID, request.Photos); err != nil {
		log.Println("Error reordering photos:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Photos reordered"})
}

// GetPhotos lists a user's photos with presigned read URLs
func (c *PhotoController) GetPhotos(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "userId is required")
		return
	}

	photos, err := c.PhotoService.GetPhotosForUser(r.Context(), userID)
	if err != nil {
		log.Println("Error fetching photos:", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"photos": photos})
}
