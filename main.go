package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"wingman_server/routes"
	"wingman_server/services"
	"wingman_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize the socket.io hub for realtime match notifications
	hub := socket.NewHub()
	go func() {
		if err := hub.Server.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer hub.Server.Close()

	// Initialize Services
	photoService := &services.PhotoService{Dynamo: dynamoService, ReadURL: services.GenerateReadURL}
	profileService := &services.ProfileService{Dynamo: dynamoService, Photos: photoService}
	delegationService := &services.DelegationService{Dynamo: dynamoService, Profiles: profileService}
	inviteService := &services.InviteService{Dynamo: dynamoService, Delegations: delegationService, Profiles: profileService}
	swipeService := &services.SwipeService{Dynamo: dynamoService, Delegations: delegationService, Notifier: hub}
	matchService := &services.MatchService{Dynamo: dynamoService, Delegations: delegationService, Profiles: profileService, Swipes: swipeService}
	feedService := &services.FeedService{Dynamo: dynamoService, Delegations: delegationService, Swipes: swipeService, Photos: photoService}
	seedService := &services.SeedService{Profiles: profileService, Photos: photoService, Delegations: delegationService}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Wingman")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterDelegationRoutes(r, delegationService)
	routes.RegisterInviteRoutes(r, inviteService)
	routes.RegisterSwipeRoutes(r, swipeService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterFeedRoutes(r, feedService)
	routes.RegisterPhotoRoutes(r, photoService)
	routes.RegisterSeedRoutes(r, seedService)

	// Socket.IO endpoint
	r.Handle("/socket.io/", hub.Server)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
