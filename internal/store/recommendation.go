// Learnpath - Adaptive Learning Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnpath

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/metrics"
)

// recommendationKey builds a key that sorts chronologically within a
// student's history. The UUID suffix disambiguates same-nanosecond writes.
func recommendationKey(studentID string, ts time.Time) string {
	return fmt.Sprintf("%s%s:%020d:%s", recommendationKeyPrefix, studentID, ts.UnixNano(), uuid.New().String())
}

// PutRecommendation appends a recommendation to the student's history.
func (s *Store) PutRecommendation(ctx context.Context, rec *learn.Recommendation) error {
	start := time.Now()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recommendationKey(rec.StudentID, ts)), data)
	})
	metrics.RecordStoreOp("put", "recommendation", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put recommendation: %w", err)
	}
	return nil
}

// ListRecommendations returns the student's most recent recommendations,
// newest first. A limit of 0 returns the full history.
func (s *Store) ListRecommendations(ctx context.Context, studentID string, limit int) ([]*learn.Recommendation, error) {
	start := time.Now()

	var recs []*learn.Recommendation
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recommendationKeyPrefix + studentID + ":")
		// Reverse iteration starts past the last key under the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(recs) >= limit {
				break
			}
			var rec learn.Recommendation
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal recommendation: %w", err)
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	metrics.RecordStoreOp("list", "recommendation", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recs, nil
}
