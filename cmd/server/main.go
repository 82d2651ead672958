// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

// Package main is the entry point for the Learnpath server.
//
// Learnpath is a self-hosted adaptive learning recommendation engine. It
// tracks per-topic mastery with Bayesian Knowledge Tracing, scores
// candidate content along pedagogical dimensions (learning style, ZPD
// difficulty, cognitive load, knowledge gaps, engagement, exploration),
// and serves recommendations over a JSON REST API.
//
// # Startup Order
//
//  1. Configuration: layered load via Koanf v2 (defaults, config.yaml,
//     LEARNPATH_* environment variables)
//  2. Logging: zerolog initialized from config
//  3. Store: BadgerDB opened at the configured path
//  4. Engine: selection engine built from the tuning config
//  5. Supervisor tree: store GC loop and HTTP server under suture v4
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests within the configured shutdown timeout, then the
// store is closed.
//
// # Example Usage
//
// Development with an ephemeral store:
//
//	export LEARNPATH_STORE_IN_MEMORY=true
//	export LEARNPATH_LOG_LEVEL=debug
//	./learnpath
//
// Production:
//
//	export LEARNPATH_ENVIRONMENT=production
//	export LEARNPATH_STORE_PATH=/var/lib/learnpath
//	export LEARNPATH_LOG_FORMAT=json
//	./learnpath
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/learnpath/internal/api"
	"github.com/tomtom215/learnpath/internal/config"
	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/logging"
	"github.com/tomtom215/learnpath/internal/metrics"
	"github.com/tomtom215/learnpath/internal/store"
	"github.com/tomtom215/learnpath/internal/supervisor"
	"github.com/tomtom215/learnpath/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not yet available, so this uses the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Msg("Starting Learnpath")

	st, err := store.Open(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Error closing store")
		}
	}()

	engine, err := learn.NewEngine(&cfg.Engine, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build selection engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.AppInfo.WithLabelValues(api.Version, runtime.Version()).Set(1)
	go trackUptime(ctx)

	handler := api.NewHandler(st, engine, cfg)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// sutureslog speaks slog, so the supervisor gets the zerolog bridge.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewStoreGCService(st))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// trackUptime refreshes the uptime gauge until shutdown.
func trackUptime(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}
