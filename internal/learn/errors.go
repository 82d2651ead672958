// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package learn

import "errors"

// Sentinel errors for the learn package. Callers match with errors.Is.
var (
	// ErrValidation indicates a record or configuration value violated a
	// construction-time invariant. Non-retryable; signals caller misuse.
	ErrValidation = errors.New("validation failed")

	// ErrNoCandidates indicates Select was called with an empty candidate
	// list. The constraint-filter fallback can only operate on a
	// non-empty catalog.
	ErrNoCandidates = errors.New("no candidate content provided")
)
