// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command dovito runs the Dovito EDU API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dovito/dovito-edu/internal/auth"
	"github.com/dovito/dovito-edu/internal/cache"
	"github.com/dovito/dovito-edu/internal/config"
	"github.com/dovito/dovito-edu/internal/logging"
	"github.com/dovito/dovito-edu/internal/middleware"
	"github.com/dovito/dovito-edu/internal/server"
	"github.com/dovito/dovito-edu/internal/service"
	"github.com/dovito/dovito-edu/internal/session"
	"github.com/dovito/dovito-edu/internal/store"
	"github.com/dovito/dovito-edu/internal/version"
)

// Set via ldflags at build time.
var (
	appVersion   string
	appGitCommit string
	appBuildTime string
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Dovito EDU - AI education platform API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SESSION_SECRET          Session signing key (required in production, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GOOGLE_CLIENT_ID        Google OAuth client ID (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GOOGLE_CLIENT_SECRET    Google OAuth client secret (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GOOGLE_CALLBACK_URL     OAuth redirect URL\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_ENV              development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_SERVER_PORT      Server port (default: 5000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_DB_PATH          SQLite database path (default: ./data/dovito.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_UPLOADS_DIR      Uploaded workshop decks (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_CLIENT_DIR       Built SPA to serve (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_SESSION_STORE    memory|sqlite|redis (default: memory)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_REDIS_URL        Redis URL for the redis session store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DOVITO_DO_SEED          Seed the AI tool catalog on startup\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.Resolve()
	if *showVersion {
		_, _ = fmt.Printf("dovito %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format := logging.FormatJSON
	if cfg.IsDevelopment() {
		format = logging.FormatText
	}
	logger := logging.New(os.Stdout, level, format)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, store.SeedOptions{AdminEmail: cfg.AdminEmail}); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
	}

	sessionManager, err := session.New(session.Options{
		Store: cfg.SessionStore,
		IsDev: cfg.IsDevelopment(),
		DB:    db,
		Redis: redisClient,
	})
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}
	slog.Info("session store ready", "store", cfg.SessionStore)

	var google auth.IdentityProvider
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
		slog.Info("google sign-in enabled", "callback_url", cfg.GoogleCallbackURL)
	} else {
		slog.Warn("google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Close()

	uploads := service.NewUploadService(cfg.UploadsDir)
	if err := os.MkdirAll(uploads.Dir(), 0o755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	router := server.New(server.Deps{
		Config:          cfg,
		DB:              db,
		Sessions:        sessionManager,
		Uploads:         uploads,
		Google:          google,
		LoginProtection: loginProtection,
		Logger:          logger,
		Version:         info,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
