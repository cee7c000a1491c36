package routes

import (
	"wingman_server/controllers"
	"wingman_server/services"

	"github.com/gorilla/mux"
)

// RegisterDelegationRoutes sets up routes for the delegation registry under
// /api/delegations
func RegisterDelegationRoutes(r *mux.Router, delegationService *services.DelegationService) {
	controller := controllers.NewDelegationController(delegationService)

	delegationRouter := r.PathPrefix("/api/delegations").Subrouter()
	delegationRouter.HandleFunc("", controller.ListDelegations).Methods("GET")
	delegationRouter.HandleFunc("/revoke", controller.RevokeDelegation).Methods("POST")
}
