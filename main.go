package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renix-codex/posts/internal/api"
	"github.com/renix-codex/posts/internal/config"
	"github.com/renix-codex/posts/internal/logger"
	"github.com/renix-codex/posts/internal/posts"
	"github.com/renix-codex/posts/internal/posts/store"
	http "github.com/renix-codex/posts/internal/server"
)

func main() {
	if err := run(); err != nil {
		logger.New(nil).Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	boot := logger.New(nil)
	if err := config.LoadEnvFile(envFile()); err != nil {
		boot.Warn("env file not loaded", "error", err)
	}
	cfg := config.FromEnv()
	log := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stdout,
		JSON:       cfg.LogJSON,
		TimeFormat: time.RFC3339,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connection provider, shared by every request
	mgr := store.NewManager(
		store.WithConnectTimeout(cfg.ConnectTimeout),
		store.WithLogger(log.With("component", "store")),
	)
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mgr.Close(cctx); err != nil {
			log.Warn("store close failed", "error", err)
		}
	}()

	if cfg.ConnectOnStart {
		if _, err := mgr.EnsureConnected(ctx); err != nil {
			log.Warn("store not reachable at startup; will retry on first request", "error", err)
		}
	}

	svc := posts.New(mgr, time.Now, log.With("component", "posts"))
	app := api.New(svc)

	s := http.New(app, log.With("component", "http"))
	log.Info("Backend running", "addr", cfg.ListenAddr)
	return s.ListenAndServe(ctx, cfg.ListenAddr)
}

func envFile() string {
	if p, ok := os.LookupEnv("ENV_FILE"); ok {
		return p
	}
	return ".env"
}
