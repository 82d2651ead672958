// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package services

import "context"

// GCRunner matches the store's blocking garbage-collection loop.
//
// Satisfied by *store.Store.
type GCRunner interface {
	RunGC(ctx context.Context)
}

// StoreGCService runs the store's value-log GC loop as a supervised
// service. The loop itself handles tick scheduling and returns when the
// context is canceled.
type StoreGCService struct {
	runner GCRunner
	name   string
}

// NewStoreGCService creates a new store GC service wrapper.
func NewStoreGCService(runner GCRunner) *StoreGCService {
	return &StoreGCService{
		runner: runner,
		name:   "store-gc",
	}
}

// Serve implements suture.Service. RunGC blocks until the context is
// canceled, so a normal return maps to ctx.Err() and suture stops the
// service instead of restarting it.
func (s *StoreGCService) Serve(ctx context.Context) error {
	s.runner.RunGC(ctx)
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *StoreGCService) String() string {
	return s.name
}
