package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/session"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/http/middleware"
)

type RouterDeps struct {
	Auth           *session.AuthService
	Sessions       *game.SessionManager
	AI             *game.AIService
	History        HistoryRepository
	Health         *HealthHandler
	WebSocket      gin.HandlerFunc // Optional
	AllowedOrigins []string
	StaticDir      string // Optional SPA build to serve
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	authHandler := NewAuthHandler(d.Auth)
	aiHandler := NewAIHandler(d.AI)
	gameHandler := NewGameHandler(d.Sessions)
	historyHandler := NewHistoryHandler(d.History)
	watchHandler := NewWatchHandler(d.Sessions)

	authMW := middleware.AuthMiddleware(d.Auth)

	router.GET("/healthz", d.Health.Health)

	// Public Auth Routes
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/auth/guest", authHandler.Guest)

	protected := router.Group("/api")
	protected.Use(authMW)
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.POST("/ai/move", aiHandler.Move)
		protected.GET("/ai/depth", aiHandler.GetDepth)
		protected.DELETE("/ai/depth", aiHandler.ResetDepth)

		protected.POST("/games", gameHandler.Create)
		protected.GET("/games/:id", gameHandler.Get)
		protected.POST("/games/:id/moves", gameHandler.Move)
		protected.POST("/games/:id/abandon", gameHandler.Abandon)

		protected.GET("/history", historyHandler.GetHistory)
		protected.GET("/history/:id", historyHandler.GetGameDetails)

		protected.GET("/watch", watchHandler.GetLiveGames)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if d.WebSocket != nil {
		router.GET("/ws", d.WebSocket)
	}

	if d.StaticDir != "" {
		serveSPA(router, d.StaticDir)
	}
	return router
}

// serveSPA serves the built frontend and falls back to index.html for
// client-side routes.
func serveSPA(router *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}
	index := filepath.Join(dir, "index.html")
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		file := filepath.Join(dir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		if strings.HasPrefix(path, "/assets/") || strings.HasSuffix(path, ".css") || strings.HasSuffix(path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	})
}
