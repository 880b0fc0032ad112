package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/config"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/repository/postgres"
	"github.com/iamasit07/tic-tac-toe/backend/internal/repository/redis"
	"github.com/iamasit07/tic-tac-toe/backend/internal/repository/sqlite"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/cleanup"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/session"
	transportHttp "github.com/iamasit07/tic-tac-toe/backend/internal/transport/http"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/websocket"
	"github.com/joho/godotenv"
)

// repository is what both database backends provide
type repository interface {
	session.PlayerRepository
	game.GameRepository
	transportHttp.HistoryRepository
}

type store struct {
	session.PlayerRepository
	gameStore
}

type gameStore interface {
	SaveGame(rec *domain.GameRecord) error
	GetPlayerHistory(playerID int64, limit int) ([]domain.GameRecord, error)
	GetGameByID(gameID string) (*domain.GameRecord, error)
}

func openStore(cfg *config.Config) (*sql.DB, repository) {
	if cfg.DBDriver == "sqlite" {
		db, err := sqlite.Open(cfg.SQLitePath, 1)
		if err != nil {
			log.Fatalf("Failed to open SQLite database: %v", err)
		}
		return db, store{sqlite.NewPlayerRepo(db), sqlite.NewGameRepo(db)}
	}

	db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.DBAutoMigrate {
		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")
	}
	return db, store{postgres.NewPlayerRepo(db), postgres.NewGameRepo(db)}
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Persistence
	db, repo := openStore(cfg)
	defer db.Close()

	// 2. Cache. Without Redis an in-process cache keeps the same behaviour
	// for a single instance.
	var cache interface {
		game.CacheRepository
		transportHttp.CachePinger
	}
	if client := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); client != nil {
		redisCache := redis.NewRedisCache(client)
		defer redisCache.Close()
		cache = redisCache
	} else {
		cache = redis.NewMemoryCache()
	}

	// 3. Services
	botSettings := bot.Settings{
		InitialDepth:     cfg.AIInitialDepth,
		EndgameThreshold: cfg.AIEndgameThreshold,
	}
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(repo, cache, connManager, game.Options{
		Bot:      botSettings,
		CacheTTL: cfg.SessionCacheTTL,
	})
	aiService := game.NewAIService(botSettings, cache, cfg.SessionCacheTTL)
	authService := session.NewAuthService(repo, cache)

	// 4. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout, cfg.CleanupInterval)
	go cleanupWorker.Start(workerCtx)

	// 5. Transport
	wsHandler := websocket.NewHandler(connManager, sessionManager, authService, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		Auth:           authService,
		Sessions:       sessionManager,
		AI:             aiService,
		History:        repo,
		Health:         &transportHttp.HealthHandler{DB: db, Cache: cache},
		WebSocket:      wsHandler.HandleWebSocket,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (db=%s)", cfg.Port, cfg.DBDriver)
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
		log.Printf("Server forced to shutdown: %v", err)
	}
	stopWorkers()
	sessionManager.WaitForSaves()

	log.Println("Server exited gracefully")
}
