package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"salesboard/internal/amqp"
	"salesboard/internal/auth"
	"salesboard/internal/config"
	apphttp "salesboard/internal/http"
	"salesboard/internal/store"
	"salesboard/internal/store/jsonfile"
	"salesboard/internal/store/memory"
	"salesboard/internal/store/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Sessions do not survive a restart with a generated secret; set
	// SESSION_SECRET to keep tokens valid across deploys.
	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("SESSION_SECRET not set, generated an ephemeral one")
	}
	tokens := auth.NewTokenIssuer(secret, cfg.SessionTTL)

	var override *auth.Account
	if cfg.OverrideConfigured() {
		override = &auth.Account{Username: cfg.AuthUsername, Password: cfg.AuthPassword}
		logger.Info("Credential override active", "username", cfg.AuthUsername)
	}
	creds := auth.NewCredentials(auth.DefaultAccounts(), override)

	var (
		appender store.Appender
		lister   store.Lister
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		appender, lister = repo, repo
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	case "memory":
		st := memory.New()
		appender, lister = st, st
		logger.Info("Initialized memory backend")
	default:
		st := jsonfile.New(cfg.SalesFilePath)
		appender, lister = st, st
		logger.Info("Initialized json backend", "path", cfg.SalesFilePath)
	}

	// Event publishing is optional; the dashboard works without a broker.
	var events apphttp.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, export events disabled", "error", err)
		} else {
			defer client.Close()
			events = client
			logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, appender, lister, creds, tokens, events)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting salesboard server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
