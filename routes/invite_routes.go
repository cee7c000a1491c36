package routes

import (
	"wingman_server/controllers"
	"wingman_server/services"

	"github.com/gorilla/mux"
)

// RegisterInviteRoutes sets up routes for invite codes under /api/invites
func RegisterInviteRoutes(r *mux.Router, inviteService *services.InviteService) {
	controller := controllers.NewInviteController(inviteService)

	inviteRouter := r.PathPrefix("/api/invites").Subrouter()
	inviteRouter.HandleFunc("", controller.IssueInvite).Methods("POST")
	inviteRouter.HandleFunc("/redeem", controller.RedeemInvite).Methods("POST")
}
