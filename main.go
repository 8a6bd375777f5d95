package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tripvault/tripvault/internal/config"
	"github.com/tripvault/tripvault/internal/domain"
	"github.com/tripvault/tripvault/internal/handler"
	"github.com/tripvault/tripvault/internal/repository/mongo"
	"github.com/tripvault/tripvault/internal/repository/sqlite"
	"github.com/tripvault/tripvault/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("store ready", "type", cfg.DatabaseType)

	authService := service.NewAuthService(store.Users(), store.Trips(), cfg.JWTSecret, cfg.BcryptCost)
	tripService := service.NewTripService(store.Trips())
	uploadService := service.NewUploadService(store.Files(), cfg.BaseURL)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, tripService, uploadService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.RequestLogger(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	if cfg.DatabaseType == config.MongoDB {
		return mongo.New(ctx, cfg.MongoURI, cfg.DatabaseName)
	}
	return sqlite.New(cfg.SQLitePath)
}
