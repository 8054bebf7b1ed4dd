package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-n/internal/config"
	"github.com/iamasit07/connect-n/internal/repository/redis"
	"github.com/iamasit07/connect-n/internal/service/cleanup"
	"github.com/iamasit07/connect-n/internal/service/game"
	transportHttp "github.com/iamasit07/connect-n/internal/transport/http"
	"github.com/iamasit07/connect-n/internal/transport/http/middleware"
	"github.com/iamasit07/connect-n/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Initialize Redis for live game snapshots
	if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var store game.SnapshotStore
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		store = redis.NewSnapshotStore(redis.RedisClient)
	}

	// 2. Initialize Services
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(connManager, store, cfg.BotMoveDelay, cfg.SnapshotTTL)
	sessionManager.SetLimits(game.Limits{MaxColumns: cfg.MaxColumns, MaxRows: cfg.MaxRows, MaxDepth: cfg.MaxSearchDepth})
	gameService := game.NewService(sessionManager, cfg.GameTokenSecret, cfg.GameTokenTTL)

	// 3. Initialize Background Workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// 4. Initialize Handlers
	gameHandler := transportHttp.NewGameHandler(gameService, cfg)
	wsHandler := websocket.NewHandler(connManager, gameService, cfg.AllowedOrigins)

	// 5. Setup Gin Router
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "games": sessionManager.Count(), "redis": redis.IsRedisEnabled()})
	})
	gameHandler.RegisterRoutes(router)

	// WebSocket Route (the game token is checked inside the WS handler itself)
	router.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (%dx%d, connect %d, depth %d)",
			cfg.Port, cfg.Columns, cfg.Rows, cfg.ConnectLength, cfg.SearchDepth)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
