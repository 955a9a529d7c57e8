package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"user_backend/internal/app/config"
	"user_backend/internal/app/di"
	"user_backend/internal/app/router"
	"user_backend/internal/platform/db"
)

const shutdownTimeout = 10 * time.Second

func main() {
	dotenvLoaded := config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Everything below logs with the configured format and level.
	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	if !dotenvLoaded {
		slog.Info(".env not found; using system environment variables")
	}
	for _, w := range cfg.Warnings {
		slog.Warn(w)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		slog.Error("database unavailable", "error", err, "driver", cfg.DB.Driver)
		os.Exit(1)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}

	r := router.NewRouter(di.NewRouterDeps(cfg, gdb, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.Env, "db_driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
