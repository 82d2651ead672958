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
	"github.com/goccy/go-json"

	"github.com/tomtom215/learnpath/internal/learn"
	"github.com/tomtom215/learnpath/internal/metrics"
)

// PutTopic stores or replaces a topic record.
func (s *Store) PutTopic(ctx context.Context, topic *learn.Topic) error {
	start := time.Now()

	if err := topic.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(topic)
	if err != nil {
		return fmt.Errorf("marshal topic: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(topicKeyPrefix+topic.ID), data)
	})
	metrics.RecordStoreOp("put", "topic", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put topic: %w", err)
	}
	return nil
}

// GetTopic retrieves a topic by ID.
func (s *Store) GetTopic(ctx context.Context, id string) (*learn.Topic, error) {
	start := time.Now()

	var topic learn.Topic
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(topicKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTopicNotFound
		}
		if err != nil {
			return fmt.Errorf("get topic: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &topic)
		})
	})
	metrics.RecordStoreOp("get", "topic", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic removes a topic by ID. Deleting is idempotent.
func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(topicKeyPrefix + id))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete topic: %w", err)
		}
		return nil
	})
	metrics.RecordStoreOp("delete", "topic", time.Since(start), err)
	return err
}

// ListTopics returns all topics keyed by ID, the shape the selection
// engine consumes.
func (s *Store) ListTopics(ctx context.Context) (map[string]*learn.Topic, error) {
	start := time.Now()

	topics := make(map[string]*learn.Topic)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(topicKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var topic learn.Topic
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &topic)
			})
			if err != nil {
				return fmt.Errorf("unmarshal topic: %w", err)
			}
			topics[topic.ID] = &topic
		}
		return nil
	})
	metrics.RecordStoreOp("list", "topic", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return topics, nil
}
