// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"sync"
	"time"

	"github.com/tomtom215/learnpath/internal/config"
	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/store"
)

// Version is the application version reported by the health endpoint.
// Overridden at build time via -ldflags.
var Version = "dev"

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: liveness/readiness/health endpoints
//   - handlers_students.go: student lifecycle endpoints
//   - handlers_learning.go: recommendation and observation endpoints
//   - handlers_catalog.go: topic and content authoring endpoints
//   - handlers_engine.go: engine configuration endpoints
type Handler struct {
	store     *store.Store
	engine    *learn.Engine
	config    *config.Config
	startTime time.Time

	// studentLocks serializes read-modify-write cycles per student.
	// The engine locks its own state but requires callers to serialize
	// Select/Apply for the same student.
	studentLocks sync.Map // map[string]*sync.Mutex
}

// NewHandler creates a new API handler.
func NewHandler(st *store.Store, engine *learn.Engine, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		engine:    engine,
		config:    cfg,
		startTime: time.Now(),
	}
}

// lockStudent acquires the per-student mutex, creating it on first use.
// The returned func releases the lock.
func (h *Handler) lockStudent(id string) func() {
	muIface, _ := h.studentLocks.LoadOrStore(id, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
