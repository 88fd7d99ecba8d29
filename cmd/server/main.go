package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	httpapi "gridclaim/internal/api/http"
	"gridclaim/internal/api/ws"
	"gridclaim/internal/config"
	"gridclaim/internal/room"
	"gridclaim/internal/store"
	"gridclaim/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "config", *configPath)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting gridclaim",
		"version", version.Version,
		"commit", version.Commit,
		"addr", cfg.Server.Addr,
		"palette", cfg.Game.Palette,
		"grid_cells", cfg.Game.GridCells,
		"trust_client_color", cfg.Game.TrustClientColor,
		"acknowledge_errors", cfg.Session.AcknowledgeErrors,
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := store.NewMemoryStore()
	hub := ws.NewHub(cfg.WS, cfg.Session.AcknowledgeErrors, logger)
	rm := room.NewManager(mem, cfg.Game, hub, logger)
	hub.SetHandler(rm)
	r := httpapi.NewRouter(rm, hub, cfg.Game, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped", "rooms", mem.Len())
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
