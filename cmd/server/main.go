package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feudlive/internal/cache"
	"feudlive/internal/config"
	"feudlive/internal/repository"
	"feudlive/internal/service"
	"feudlive/internal/transport/rest"
	"feudlive/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	// Load .env if present, then config from environment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	gameRepo := repository.NewGameRepo(db)
	playerRepo := repository.NewPlayerRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	synonymRepo := repository.NewSynonymRepo(db)

	// Initialize caches
	gameCache := cache.NewGameCache(rdb)
	scoreCache := cache.NewScoreCache(rdb)

	// Initialize services
	synonymSvc := service.NewSynonymService(synonymRepo)
	checker := service.NewAnswerChecker(synonymSvc)
	questionSvc := service.NewQuestionService(questionRepo)
	syncSvc := service.NewSynonymSyncService(questionRepo, synonymRepo)
	gameSvc := service.NewGameService(gameRepo, playerRepo, questionRepo, checker, gameCache, scoreCache, cfg.MaxRounds, nil)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	gameSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		GameService:     gameSvc,
		QuestionService: questionSvc,
		SyncService:     syncSvc,
		GameRepo:        gameRepo,
		PlayerRepo:      playerRepo,
		QuestionRepo:    questionRepo,
		SynonymRepo:     synonymRepo,
		ScoreCache:      scoreCache,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/games")
		log.Println("  POST /v1/games/{code}/join")
		log.Println("  POST /v1/games/{code}/start")
		log.Println("  GET  /v1/games/{code}/state")
		log.Println("  POST /v1/games/{code}/guess")
		log.Println("  POST /v1/games/{code}/steal")
		log.Println("  POST/GET /v1/questions")
		log.Println("  POST /v1/synonyms/sync")
		log.Println("  WS   /v1/ws/games/{code}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
