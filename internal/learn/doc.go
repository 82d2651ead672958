// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

// Package learn implements the multi-objective adaptive learning core:
// mastery estimation, content scoring, and constrained content selection.
//
// # Architecture
//
// The package is layered leaves-first:
//
//   - Data model: Topic, Content, StudentState, Observation — validated
//     records, immutable by convention except StudentState
//   - BKT: Bayesian Knowledge Tracing mastery estimator
//   - Scorer: six independent scoring components (style match, difficulty
//     fit, cognitive-load fit, knowledge-gap targeting, engagement
//     prediction, exploration bonus)
//   - Engine: filters candidates by pedagogical constraints, maximizes the
//     weighted objective, and applies state transitions
//
// The objective maximized per selection is
//
//	C* = argmax[ w_ls·LS + w_d·D + w_cl·CL + w_kg·KG + w_e·Eng + E ]
//
// subject to prerequisite mastery, Zone-of-Proximal-Development difficulty,
// and cognitive-load constraints, where E is the unweighted UCB exploration
// bonus.
//
// # Design Principles
//
//   - Deterministic: same inputs produce identical outputs; selection ties
//     break on candidate order, never randomly
//   - Pure scoring: Scorer and BKT hold no mutable state
//   - Explicit mutation: only Engine.Apply mutates a StudentState, in
//     place, returning the same pointer
//   - Total operations: after construction-time validation, every
//     operation succeeds — an empty eligible set falls back to the least
//     difficult candidate rather than failing
//
// # Usage
//
//	cfg := learn.DefaultConfig()
//	engine, err := learn.NewEngine(cfg, logger)
//
//	sel, err := engine.Select(student, catalog, topics)
//	// ... student interacts with sel.Content ...
//	obs, err := learn.NewObservation(sel.Content.ID, sel.Content.TopicID, true, 240, 0.8)
//	student = engine.Apply(student, obs, sel.Content)
//
// # Thread Safety
//
// The engine guards its own time step and weights with a mutex and may be
// shared across goroutines. StudentState has no internal synchronization;
// callers must serialize operations on the same student.
package learn
