package routes

import (
	"wingman_server/controllers"
	"wingman_server/services"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up routes for photo operations under /api/photos
func RegisterPhotoRoutes(r *mux.Router, photoService *services.PhotoService) {
	controller := controllers.NewPhotoController(photoService)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("", controller.GetPhotos).Methods("GET")
	photoRouter.HandleFunc("", controller.UploadPhoto).Methods("POST")
	photoRouter.HandleFunc("/reorder", controller.ReorderPhotos).Methods("POST")
}
