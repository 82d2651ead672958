// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package middleware provides HTTP middleware for the API server.

Key Components:

  - RequestID: UUID-based request tracking for distributed tracing
  - RequestLogger: one structured log line per request
  - PrometheusMetrics: request/response instrumentation

Middleware Stack:

Middlewares are chi-compatible (func(http.Handler) http.Handler) and are
mounted on the router in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(httprate.LimitByIP(reqs, window))
*/
package middleware
