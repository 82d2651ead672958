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

// PutContent stores or replaces a content record.
func (s *Store) PutContent(ctx context.Context, content *learn.Content) error {
	start := time.Now()

	if err := content.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(contentKeyPrefix+content.ID), data)
	})
	metrics.RecordStoreOp("put", "content", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put content: %w", err)
	}
	return nil
}

// GetContent retrieves a content item by ID.
func (s *Store) GetContent(ctx context.Context, id string) (*learn.Content, error) {
	start := time.Now()

	var content learn.Content
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(contentKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrContentNotFound
		}
		if err != nil {
			return fmt.Errorf("get content: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &content)
		})
	})
	metrics.RecordStoreOp("get", "content", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// DeleteContent removes a content item by ID. Deleting is idempotent.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(contentKeyPrefix + id))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete content: %w", err)
		}
		return nil
	})
	metrics.RecordStoreOp("delete", "content", time.Since(start), err)
	return err
}

// ListContent returns all content records.
func (s *Store) ListContent(ctx context.Context) ([]*learn.Content, error) {
	start := time.Now()

	var items []*learn.Content
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(contentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var content learn.Content
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &content)
			})
			if err != nil {
				return fmt.Errorf("unmarshal content: %w", err)
			}
			items = append(items, &content)
		}
		return nil
	})
	metrics.RecordStoreOp("list", "content", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListContentByTopic returns content items teaching the given topic.
func (s *Store) ListContentByTopic(ctx context.Context, topicID string) ([]*learn.Content, error) {
	items, err := s.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	filtered := items[:0]
	for _, c := range items {
		if c.TopicID == topicID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// IncrementInteraction bumps a content item's interaction counter in a
// single transaction. Called by the serving layer when content is
// delivered to a student.
func (s *Store) IncrementInteraction(ctx context.Context, contentID string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(contentKeyPrefix + contentID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrContentNotFound
		}
		if err != nil {
			return fmt.Errorf("get content: %w", err)
		}

		var content learn.Content
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &content)
		})
		if err != nil {
			return fmt.Errorf("unmarshal content: %w", err)
		}

		content.InteractionCount++

		data, err := json.Marshal(&content)
		if err != nil {
			return fmt.Errorf("marshal content: %w", err)
		}
		return txn.Set(key, data)
	})
	metrics.RecordStoreOp("increment", "content", time.Since(start), err)
	return err
}
