// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Selection engine latency and outcomes
// - Mastery estimation events
// - BadgerDB store operation performance
// - API endpoint latency and throughput

var (
	// Selection Engine Metrics
	SelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of content selection in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selections_total",
			Help: "Total number of content selections",
		},
		[]string{"outcome"}, // "scored", "fallback", "error"
	)

	SelectionCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_candidate_count",
			Help:    "Number of candidate content items per selection",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	SelectionEligible = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_eligible_count",
			Help:    "Number of candidates surviving the constraint filter",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Mastery Estimation Metrics
	ObservationsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "observations_applied_total",
			Help: "Total number of observations applied to student state",
		},
		[]string{"correct"}, // "true", "false"
	)

	TopicsMastered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "topics_mastered_total",
			Help: "Total number of topic mastery events",
		},
	)

	MasteryDelta = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mastery_delta",
			Help:    "Per-observation change in estimated mastery",
			Buckets: []float64{-0.5, -0.25, -0.1, -0.05, 0, 0.05, 0.1, 0.25, 0.5},
		},
	)

	// Store Metrics (BadgerDB)
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of BadgerDB store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "record"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of store operation errors",
		},
		[]string{"operation", "record"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of BadgerDB value-log GC attempts",
		},
		[]string{"result"}, // "reclaimed", "nothing", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordSelection records a selection outcome and its latency.
func RecordSelection(duration time.Duration, candidates, eligible int, fallback bool, err error) {
	switch {
	case err != nil:
		SelectionsTotal.WithLabelValues("error").Inc()
		return
	case fallback:
		SelectionsTotal.WithLabelValues("fallback").Inc()
	default:
		SelectionsTotal.WithLabelValues("scored").Inc()
	}
	SelectionDuration.Observe(duration.Seconds())
	SelectionCandidates.Observe(float64(candidates))
	SelectionEligible.Observe(float64(eligible))
}

// RecordObservation records an applied observation and the resulting
// mastery change.
func RecordObservation(correct bool, masteryBefore, masteryAfter float64, mastered bool) {
	label := "false"
	if correct {
		label = "true"
	}
	ObservationsApplied.WithLabelValues(label).Inc()
	MasteryDelta.Observe(masteryAfter - masteryBefore)
	if mastered {
		TopicsMastered.Inc()
	}
}

// RecordStoreOp records a store operation metric.
func RecordStoreOp(operation, record string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation, record).Observe(duration.Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(operation, record).Inc()
	}
}

// RecordStoreGC records a value-log GC attempt.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
