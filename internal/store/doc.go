// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

/*
Package store provides durable persistence for learner records using BadgerDB.

# Overview

All records (students, topics, content, recommendations) are stored as JSON
values under typed key prefixes in a single BadgerDB instance:

	student:<student_id>
	topic:<topic_id>
	content:<content_id>
	rec:<student_id>:<timestamp>:<uuid>

# Usage

	st, err := store.Open(store.Config{Path: "/var/lib/learnpath"})
	if err != nil {
		return err
	}
	defer st.Close()

	student, err := st.GetStudent(ctx, "s-1")

# In-Memory Mode

Config.InMemory opens BadgerDB without disk persistence. Used by tests and
ephemeral deployments.

# Thread Safety

All methods are safe for concurrent use. BadgerDB provides serializable
snapshot isolation; read-modify-write operations run in a single Update
transaction.
*/
package store
