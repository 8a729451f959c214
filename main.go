package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/fitcoach/internal/config"
	"github.com/msomdec/fitcoach/internal/handler"
	"github.com/msomdec/fitcoach/internal/recommend"
	"github.com/msomdec/fitcoach/internal/repository/sqlite"
	"github.com/msomdec/fitcoach/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	snaps := service.NewSnapshots(db.Collections())

	if cfg.ImportDir != "" {
		n, err := snaps.ImportLegacy(context.Background(), cfg.ImportDir)
		if err != nil {
			slog.Error("failed to import legacy data", "dir", cfg.ImportDir, "error", err)
			os.Exit(1)
		}
		slog.Info("legacy import finished", "dir", cfg.ImportDir, "collections", n)
	}

	chooser, err := recommend.ChooserByName(cfg.Strategy)
	if err != nil {
		slog.Error("invalid recommendation strategy", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services := handler.Services{
		Auth:            service.NewAuthService(snaps, cfg.Auth.JWTSecret, cfg.Auth.BcryptCost, cfg.Auth.TokenTTL),
		Schedule:        service.NewScheduleService(snaps),
		Recommendations: service.NewRecommendationService(snaps, recommend.NewRecommender(chooser)),
		LoginLimiter:    service.NewTokenBucket(ctx, cfg.Auth.LoginRate, cfg.Auth.LoginBurst),
		DB:              db.SqlDB,
		CookieSecure:    cfg.HTTP.CookieSecure,
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, services)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Middleware(mux, handler.CORSConfig{AllowOrigins: cfg.HTTP.CORSOrigins, MaxAge: 24 * time.Hour}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "strategy", cfg.Strategy)
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
