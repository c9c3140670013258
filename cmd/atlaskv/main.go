// Package main is the entry point for the atlaskv server application.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlaskv/atlaskv/internal/config"
	"github.com/atlaskv/atlaskv/internal/observability"
	"github.com/atlaskv/atlaskv/internal/server"
	"github.com/atlaskv/atlaskv/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configFile := flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	cfg := config.New()
	if err := cfg.Load(*configFile); err != nil {
		if !os.IsNotExist(err) {
			observability.NewLogger("main", "info", nil).Error("failed to load config", "path", *configFile, "error", err)
			os.Exit(1)
		}
		// No config file: run on defaults.
		cfg = config.New()
	}

	log := observability.NewLogger("atlaskv", cfg.LogLevel, nil)
	metrics := observability.NewMetrics()

	st := store.NewMemory(cfg.Shards)
	srv := server.New(st, observability.NewLogger("server", cfg.LogLevel, nil), metrics, cfg.MaxInFlight)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", cfg.Addr(), "shards", cfg.Shards)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Catch signals for graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("HTTP server failed", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown did not complete cleanly", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
