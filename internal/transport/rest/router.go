package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordguess/internal/cache"
	"wordguess/internal/repository"
	"wordguess/internal/service"
	"wordguess/internal/transport/rest/handler"
	"wordguess/internal/transport/rest/middleware"
	"wordguess/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService  *service.AuthService
	RelayService *service.RelayService
	GameService  *service.GameService
	ApplyService *service.ApplyService
	Leaderboard  cache.LeaderboardCache
	WordRepo     repository.WordRepo
	RoundRepo    repository.RoundRepo
	WSHub        *ws.Hub
	WSHandler    *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	relayHandler := handler.NewRelayHandler(c.RelayService)
	gameHandler := handler.NewGameHandler(c.GameService, c.ApplyService, c.Leaderboard, c.WordRepo, c.RoundRepo)
	wordHandler := handler.NewWordHandler(c.WordRepo)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Relay endpoints (public, GET or POST so chat bots can use plain links)
	r.HandleFunc("/event", relayHandler.SubmitEvent).Methods("GET", "POST", "OPTIONS")
	r.HandleFunc("/guess", relayHandler.SubmitGuess).Methods("GET", "POST", "OPTIONS")
	r.HandleFunc("/pending", relayHandler.Pending).Methods("GET", "OPTIONS")
	r.HandleFunc("/mark-processed", relayHandler.MarkProcessed).Methods("POST", "OPTIONS")

	// Public reads
	r.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/state", gameHandler.State).Methods("GET", "OPTIONS")

	// WebSocket feed (token in query param)
	if c.WSHandler != nil {
		v1.HandleFunc("/ws/feed", c.WSHandler.Feed).Methods("GET")
	}

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/words", wordHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/words", wordHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/words/{word}", wordHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/rounds/start", gameHandler.StartRound).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/rounds/end", gameHandler.EndRound).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/rounds/pause", gameHandler.TogglePause).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/leaderboard/reset", gameHandler.ResetLeaderboard).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/debug", gameHandler.Debug).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
