package routes

import (
	"wingman_server/controllers"
	"wingman_server/services"

	"github.com/gorilla/mux"
)

// RegisterSeedRoutes sets up the development-only seed endpoint
func RegisterSeedRoutes(r *mux.Router, seedService *services.SeedService) {
	controller := controllers.NewSeedController(seedService)

	r.HandleFunc("/api/dev/seed", controller.SeedDemoData).Methods("POST")
}
