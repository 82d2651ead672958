// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package supervisor provides process supervision for Learnpath using suture v4.

The supervisor tree manages the lifecycle of all long-running services in
the application with Erlang/OTP-style supervision: automatic restart with
exponential backoff, failure isolation, and graceful shutdown.

# Overview

Services are organized into two layers:

	Root ("learnpath")
	├── StorageSupervisor ("storage-layer")
	│   └── StoreGCService (BadgerDB value-log GC loop)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in the GC loop restarts only the storage layer; the HTTP server
keeps serving. Each layer has independent failure counting.

# Usage

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewStoreGCService(st))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil {
		// context canceled or supervision gave up
	}

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil to stop cleanly without restart, return an error to be
restarted per the backoff policy, and return promptly when the context
is canceled.

# Failure Handling

The supervisor keeps a failure counter with exponential decay. Each
failure increments it; when it exceeds FailureThreshold the supervisor
waits FailureBackoff before further restarts. Defaults match suture's
built-in values (threshold 5, decay 30s, backoff 15s).

Structured supervision events (starts, failures, backoff) are logged
through slog via the sutureslog adapter.
*/
package supervisor
