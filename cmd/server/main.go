// Package main provides the clientboard binary entry point: the approval
// workflow HTTP server plus a migrate command for schema setup and seeding.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clientboard/internal/cache"
	"clientboard/internal/config"
	"clientboard/internal/database"
	"clientboard/internal/handlers"
	"clientboard/internal/migrations"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "clientboard"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Client task approval workflow service",
		Long: `Clientboard owns the client-task approval workflow: operators manage
clients, tasks and task templates over a JSON API, and their clients
approve, reject or request edits on exposed tasks through time-boxed
public approval links.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed the default operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(logLevel)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runServer(logLevel string) error {
	setupLogging(logLevel)

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.Initialize(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to Redis: %w", err)
		}
		defer cacheClient.Close()
		slog.Info("board cache enabled")
	} else {
		slog.Info("no REDIS_URL configured, board reads go straight to the database")
	}

	router := handlers.SetupRouter(cfg, db, cacheClient)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.ServerPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func runMigrate(logLevel string) error {
	setupLogging(logLevel)

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	return migrations.RunMigrations(db, cfg.JWTSecret)
}
