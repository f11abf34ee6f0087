package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/petition/internal/config"
	"github.com/msomdec/petition/internal/handler"
	"github.com/msomdec/petition/internal/repository/sqlite"
	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	cfg, err := config.Load(envOrDefault("CONFIG_PATH", "petition.yml"))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.Database.Path)
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

	renderer, err := view.New()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(db.Users(), cfg.Session.Secret, cfg.BcryptCost)
	petitionService := service.NewPetitionService(db.Signatures())
	profileService := service.NewProfileService(db.Users(), db.Profiles(), db.Accounts())

	// One login/register attempt every 2 seconds per host, bursting to 10.
	limiter := service.NewTokenBucket(0.5, 10)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, petitionService, profileService, renderer, limiter, cfg.Session.CookieSecure)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
