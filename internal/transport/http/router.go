package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	"github.com/iamasit07/vier-gewinnt/internal/transport/http/middleware"
	"github.com/iamasit07/vier-gewinnt/internal/transport/websocket"
	"github.com/iamasit07/vier-gewinnt/pkg/auth"
)

type RouterConfig struct {
	Service        *game.Service
	Tokens         *auth.TokenIssuer
	Sockets        *websocket.Handler
	AllowedOrigins []string
	IsProduction   bool
	// StaticDir holds the browser page; skipped when it does not exist.
	StaticDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		health := gin.H{"status": "ok", "sessions": cfg.Service.Sessions.Len()}
		if cfg.Sockets != nil {
			health["connections"] = cfg.Sockets.ConnManager.Total()
		}
		c.JSON(http.StatusOK, health)
	})
	router.GET("/api/labels/:lang", GetLabels)

	gameHandler := NewGameHandler(cfg.Service)
	historyHandler := NewHistoryHandler(cfg.Service)

	player := router.Group("/")
	player.Use(middleware.SessionMiddleware(cfg.Tokens, cfg.IsProduction))
	{
		player.GET("/api/state", gameHandler.GetState)
		player.POST("/api/move", gameHandler.MakeMove)
		player.POST("/api/mode", gameHandler.SetMode)
		player.POST("/api/difficulty", gameHandler.SetDifficulty)
		player.POST("/api/language", gameHandler.SetLanguage)
		player.POST("/api/reset", gameHandler.ResetGame)
		player.POST("/api/reset-scores", gameHandler.ResetScores)
		player.GET("/api/analysis", gameHandler.GetAnalysis)
		player.GET("/api/history", historyHandler.GetHistory)

		if cfg.Sockets != nil {
			player.GET("/ws", cfg.Sockets.HandleWebSocket)
		}
	}

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			serveStatic(router, cfg.StaticDir)
		}
	}

	return router
}

func serveStatic(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		if strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(index)
	})
}
