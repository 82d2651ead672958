// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/learnpath/internal/middleware"
)

// Router assembles the full HTTP surface: health probes and the
// Prometheus endpoint outside the versioned group, everything else
// under /api/v1 with metrics and rate limiting applied.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)

	// Probes stay unmetered so orchestrator checks never get throttled.
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		if h.config.Server.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(h.config.Server.RateLimitReqs, h.config.Server.RateLimitWindow))
		}

		r.Route("/students", func(r chi.Router) {
			r.Post("/", h.CreateStudent)
			r.Get("/{id}", h.GetStudent)
			r.Delete("/{id}", h.DeleteStudent)
			r.Put("/{id}/preferences", h.UpdatePreferences)
			r.Get("/{id}/recommendations", h.RecommendationHistory)
			r.Post("/{id}/recommendation", h.Recommend)
			r.Post("/{id}/observations", h.SubmitObservation)
		})

		r.Route("/topics", func(r chi.Router) {
			r.Post("/", h.CreateTopic)
			r.Get("/", h.ListTopics)
			r.Get("/{id}", h.GetTopic)
			r.Delete("/{id}", h.DeleteTopic)
		})

		r.Route("/content", func(r chi.Router) {
			r.Post("/", h.CreateContent)
			r.Get("/", h.ListContent)
			r.Get("/{id}", h.GetContent)
			r.Delete("/{id}", h.DeleteContent)
		})

		r.Route("/engine", func(r chi.Router) {
			r.Get("/config", h.GetEngineConfig)
			r.Put("/weights", h.UpdateWeights)
		})
	})

	return r
}
