// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

// Package services provides suture.Service wrappers that adapt the
// application's long-running components (HTTP server, store GC loop)
// to the supervisor's Serve(ctx) lifecycle.
package services
