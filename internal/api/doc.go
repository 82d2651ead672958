// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package api provides the HTTP serving layer for Learnpath.

# Overview

The package exposes a JSON REST API over Chi:

	GET  /health/live                            liveness probe
	GET  /health/ready                           readiness probe (store reachable)
	GET  /health                                 full health document
	GET  /metrics                                Prometheus metrics

	POST   /api/v1/students                      create student
	GET    /api/v1/students/{id}                 fetch student state
	DELETE /api/v1/students/{id}                 delete student and history
	PUT    /api/v1/students/{id}/preferences     replace style preferences
	GET    /api/v1/students/{id}/recommendations recommendation history
	POST   /api/v1/students/{id}/recommendation  select next content
	POST   /api/v1/students/{id}/observations    apply an interaction outcome

	POST   /api/v1/topics                        author a topic
	GET    /api/v1/topics                        list topics
	GET    /api/v1/topics/{id}                   fetch topic
	DELETE /api/v1/topics/{id}                   delete topic
	POST   /api/v1/content                       author content
	GET    /api/v1/content                       list content (?topic_id= filter)
	GET    /api/v1/content/{id}                  fetch content
	DELETE /api/v1/content/{id}                  delete content

	GET    /api/v1/engine/config                 engine tuning parameters
	PUT    /api/v1/engine/weights                replace selection weights

# Response Envelope

Every response uses the same envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "..."}}
	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "...", "message": "..."}}

# Request Flow

A recommendation request loads the student, the topic map, and the content
catalog from the store, runs the selection engine, bumps the selected
content's interaction counter, persists the recommendation record, and
returns it.
*/
package api
