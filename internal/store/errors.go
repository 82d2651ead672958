// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package store

import "errors"

var (
	// ErrStudentNotFound indicates the requested student does not exist.
	ErrStudentNotFound = errors.New("student not found")

	// ErrTopicNotFound indicates the requested topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrContentNotFound indicates the requested content does not exist.
	ErrContentNotFound = errors.New("content not found")
)
