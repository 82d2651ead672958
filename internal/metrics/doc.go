// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package instruments:
  - Selection engine latency, candidate counts, and fallback rate
  - Mastery estimation events (observations applied, topics mastered)
  - BadgerDB store operation performance
  - API endpoint latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

Metrics are registered automatically via promauto at package init. Record
helpers are preferred over direct metric access:

	start := time.Now()
	selection, err := engine.Select(ctx, student, topics, candidates)
	metrics.RecordSelection(time.Since(start), len(candidates), eligible, selection.Fallback, err)
*/
package metrics
