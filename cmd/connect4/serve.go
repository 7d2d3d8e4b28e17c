package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/vier-gewinnt/internal/config"
	"github.com/iamasit07/vier-gewinnt/internal/repository/memory"
	"github.com/iamasit07/vier-gewinnt/internal/repository/postgres"
	"github.com/iamasit07/vier-gewinnt/internal/repository/redis"
	"github.com/iamasit07/vier-gewinnt/internal/service/cleanup"
	"github.com/iamasit07/vier-gewinnt/internal/service/game"
	transportHttp "github.com/iamasit07/vier-gewinnt/internal/transport/http"
	"github.com/iamasit07/vier-gewinnt/internal/transport/tui"
	"github.com/iamasit07/vier-gewinnt/internal/transport/websocket"
	"github.com/iamasit07/vier-gewinnt/pkg/auth"
)

var (
	flagSSHAddr   string
	flagHostKey   string
	flagStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game server",
	Long: `Start the HTTP server with the REST API, the WebSocket endpoint and the
browser page.

Game state is kept in Redis (REDIS_URL) and falls back to memory when Redis
is unreachable. Finished games are recorded in PostgreSQL when DATABASE_URL
is set.

With --ssh (or SSH_ADDR) the terminal game is served over SSH as well;
players are recognised by their public key.

Examples:
  connect4 serve
  connect4 serve --ssh :23234
  connect4 serve --static ./web`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address, e.g. :23234 (default from SSH_ADDR, off when empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (default from SSH_HOST_KEY)")
	serveCmd.Flags().StringVar(&flagStaticDir, "static", "./static", "Directory with the browser page")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()
	if flagLogLevel == "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	if flagSSHAddr == "" {
		flagSSHAddr = cfg.SSHAddr
	}
	if flagHostKey == "" {
		flagHostKey = cfg.SSHHostKey
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// State store: Redis, or memory when Redis is down
	var store game.StateStore
	if client, ok := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword); ok {
		redisStore := redis.NewStateStore(client, cfg.StateTTL)
		defer redisStore.Close()
		store = redisStore
	} else {
		log.Warn("keeping game state in memory; it is lost on restart")
		store = memory.NewStateStore()
	}

	// Game history: PostgreSQL when configured
	var history game.HistoryRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Error("game history disabled", "err", err)
		} else {
			defer db.Close()
			history = postgres.NewGameRepo(db)
		}
	}

	sessions := game.NewSessionManager(store, game.Options{
		BotMoveDelay:  cfg.BotMoveDelay,
		WinResetDelay: cfg.WinResetDelay,
		History:       history,
	})
	defer sessions.Close()

	service := game.NewService(sessions, history)
	tokens := auth.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL)
	connManager := websocket.NewConnectionManager()
	defer connManager.CloseAll()

	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Service:        service,
		Tokens:         tokens,
		Sockets:        websocket.NewHandler(connManager, sessions, cfg.AllowedOrigins),
		AllowedOrigins: cfg.AllowedOrigins,
		IsProduction:   cfg.IsProduction(),
		StaticDir:      flagStaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	var pruner cleanup.HistoryPruner
	if history != nil {
		pruner = history
	}
	worker := cleanup.NewWorker(sessions, pruner, cfg.CleanupInterval, cfg.SessionIdle, cfg.HistoryRetentionDays)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("server is shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return worker.Run(gctx)
	})

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
		}, sessions, history)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return sshServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
