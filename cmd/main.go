/*
Package main is the entry point for the jug-classic game backend.

It loads configuration, initializes the global logging system and the
database pool, wires the chat subsystem and HTTP handlers together, and
handles operating system interrupt signals (SIGINT, SIGTERM) for a graceful
shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Talibis/jug-classic/internal/app/account"
	"github.com/Talibis/jug-classic/internal/app/character"
	"github.com/Talibis/jug-classic/internal/app/chat"
	"github.com/Talibis/jug-classic/internal/app/db"
	"github.com/Talibis/jug-classic/internal/configs"
	"github.com/Talibis/jug-classic/internal/handler"
	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/metrics"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	accounts := account.NewPgStore(pool)
	characters := character.NewPgStore(pool)
	messages := chat.NewPgMessageLog(pool)

	promRegistry := prometheus.NewRegistry()
	collector := metrics.NewCollector(promRegistry)

	registry := chat.NewRegistry()
	chatRouter := chat.NewRouter(registry, accounts, characters, messages, collector)

	tokens := jwt.NewTokenService(cfg.JWTSecret)

	deps := &handler.AppDeps{
		Config:     cfg,
		Tokens:     tokens,
		Accounts:   accounts,
		Characters: characters,
		ChatRouter: chatRouter,
		Metrics:    collector,
		Gatherer:   promRegistry,
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("jug-classic server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
