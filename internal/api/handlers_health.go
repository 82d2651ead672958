// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the full health endpoint.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	StoreConnected bool    `json:"store_connected"`
	Students       int     `json:"students"`
	Topics         int     `json:"topics"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// HealthLive handles liveness probes. Returns 200 if the process is
// alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles readiness probes. Returns 200 only when the store
// answers queries.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.CountStudents(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, CodeStore, "store not ready", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Health returns the full health document including store connectivity
// and record counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	students, err := h.store.CountStudents(r.Context())
	storeConnected := err == nil

	topics := 0
	if storeConnected {
		if topicMap, terr := h.store.ListTopics(r.Context()); terr == nil {
			topics = len(topicMap)
		}
	}

	status := "healthy"
	if !storeConnected {
		status = "degraded"
	}

	respondSuccess(w, http.StatusOK, HealthStatus{
		Status:         status,
		Version:        Version,
		StoreConnected: storeConnected,
		Students:       students,
		Topics:         topics,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
	})
}
