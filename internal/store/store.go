// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/learnpath/internal/logging"
	"github.com/tomtom215/learnpath/internal/metrics"
)

// Key prefixes for BadgerDB storage.
const (
	studentKeyPrefix        = "student:"
	topicKeyPrefix          = "topic:"
	contentKeyPrefix        = "content:"
	recommendationKeyPrefix = "rec:"
)

// Config holds store configuration.
type Config struct {
	// Path is the BadgerDB data directory. Ignored when InMemory is true.
	// Default: ./data.
	Path string `json:"path" koanf:"path" validate:"required_without=InMemory"`

	// InMemory opens the database without disk persistence.
	// Default: false.
	InMemory bool `json:"in_memory" koanf:"in_memory"`

	// GCInterval is how often value-log garbage collection runs.
	// Default: 10m.
	GCInterval time.Duration `json:"gc_interval" koanf:"gc_interval"`

	// GCDiscardRatio is the minimum reclaimable fraction for a value-log
	// file to be rewritten. Must be in (0, 1). Default: 0.5.
	GCDiscardRatio float64 `json:"gc_discard_ratio" koanf:"gc_discard_ratio"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		Path:           "./data",
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// Validate checks store configuration.
func (c Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.New("store path required when not in-memory")
	}
	if c.GCInterval <= 0 {
		return fmt.Errorf("gc interval must be positive, got %v", c.GCInterval)
	}
	if c.GCDiscardRatio <= 0 || c.GCDiscardRatio >= 1 {
		return fmt.Errorf("gc discard ratio must be in (0, 1), got %v", c.GCDiscardRatio)
	}
	return nil
}

// Store is a BadgerDB-backed record store.
type Store struct {
	db  *badger.DB
	cfg Config
}

// Open opens (or creates) the store at the configured path.
func Open(cfg Config) (*Store, error) {
	if cfg.GCInterval == 0 {
		cfg.GCInterval = DefaultConfig().GCInterval
	}
	if cfg.GCDiscardRatio == 0 {
		cfg.GCDiscardRatio = DefaultConfig().GCDiscardRatio
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	return &Store{db: db, cfg: cfg}, nil
}

// Close closes the underlying BadgerDB.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunGC runs value-log garbage collection on the configured interval until
// the context is canceled. Blocks; run in a dedicated goroutine or service.
func (s *Store) RunGC(ctx context.Context) {
	if s.cfg.InMemory {
		<-ctx.Done()
		return
	}

	logger := logging.With().Str("component", "store").Logger()
	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// RunValueLogGC rewrites at most one file per call; loop
			// until nothing is reclaimable.
			for {
				err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
				if err == nil {
					metrics.RecordStoreGC("reclaimed")
					continue
				}
				if errors.Is(err, badger.ErrNoRewrite) {
					metrics.RecordStoreGC("nothing")
				} else {
					metrics.RecordStoreGC("error")
					logger.Warn().Err(err).Msg("value log gc failed")
				}
				break
			}
		}
	}
}

// count counts keys under a prefix without loading values.
func (s *Store) count(prefix string) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
