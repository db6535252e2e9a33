package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"feudlive/internal/cache"
	"feudlive/internal/repository"
	"feudlive/internal/service"
	"feudlive/internal/transport/rest/handler"
	"feudlive/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	GameService     *service.GameService
	QuestionService *service.QuestionService
	SyncService     *service.SynonymSyncService
	GameRepo        repository.GameRepo
	PlayerRepo      repository.PlayerRepo
	QuestionRepo    repository.QuestionRepo
	SynonymRepo     repository.SynonymRepo
	ScoreCache      cache.ScoreCache
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	gameHandler := handler.NewGameHandler(c.GameService, c.ScoreCache)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	synonymHandler := handler.NewSynonymHandler(c.SynonymRepo, c.SyncService)
	adminHandler := handler.NewAdminHandler(c.GameRepo, c.PlayerRepo, c.QuestionRepo, c.SynonymRepo)
	wsHandler := ws.NewHandler(c.WSHub)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Game session routes
	v1.HandleFunc("/games", gameHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/join", gameHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/players", gameHandler.Players).Methods("GET", "OPTIONS")
	v1.HandleFunc("/games/{code}/state", gameHandler.State).Methods("GET", "OPTIONS")
	v1.HandleFunc("/games/{code}/start", gameHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/end", gameHandler.End).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/finish", gameHandler.Finish).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/faceoff/start", gameHandler.StartFaceoff).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/faceoff/answer", gameHandler.SubmitFaceoffAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/faceoff/resolve", gameHandler.ResolveFaceoff).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/guess", gameHandler.SubmitGuess).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/steal", gameHandler.AttemptSteal).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/turn/switch", gameHandler.SwitchTurn).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/round/advance", gameHandler.AdvanceRound).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/answers/{answerId}/reveal", gameHandler.RevealAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/strike", gameHandler.AddStrike).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/score", gameHandler.AddScore).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{code}/scores", gameHandler.Scores).Methods("GET", "OPTIONS")

	// Question bank routes
	v1.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	// Synonym dictionary routes (sync before the canonical wildcard)
	v1.HandleFunc("/synonyms/sync", synonymHandler.Sync).Methods("POST", "OPTIONS")
	v1.HandleFunc("/synonyms", synonymHandler.Upsert).Methods("POST", "OPTIONS")
	v1.HandleFunc("/synonyms", synonymHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/synonyms/{canonical}", synonymHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/synonyms/{canonical}", synonymHandler.Delete).Methods("DELETE", "OPTIONS")

	// Admin maintenance routes
	v1.HandleFunc("/admin/games", adminHandler.ListGames).Methods("GET", "OPTIONS")
	v1.HandleFunc("/admin/games", adminHandler.DeleteGames).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/admin/players", adminHandler.ListPlayers).Methods("GET", "OPTIONS")
	v1.HandleFunc("/admin/players", adminHandler.DeletePlayers).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/admin/questions", adminHandler.ListQuestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/admin/questions", adminHandler.DeleteQuestions).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/admin/synonyms", adminHandler.ListSynonyms).Methods("GET", "OPTIONS")
	v1.HandleFunc("/admin/synonyms", adminHandler.DeleteSynonyms).Methods("DELETE", "OPTIONS")

	// WebSocket viewer stream
	v1.HandleFunc("/ws/games/{code}", wsHandler.ViewerWS).Methods("GET")

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
