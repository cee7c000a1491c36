package routes

import (
	"wingman_server/controllers"
	"wingman_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match listings under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.GetMatches).Methods("GET")
}
