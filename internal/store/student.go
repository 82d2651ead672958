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

// PutStudent stores or replaces a student record.
func (s *Store) PutStudent(ctx context.Context, student *learn.StudentState) error {
	start := time.Now()

	if err := student.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(student)
	if err != nil {
		return fmt.Errorf("marshal student: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(studentKeyPrefix+student.StudentID), data)
	})
	metrics.RecordStoreOp("put", "student", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("put student: %w", err)
	}
	return nil
}

// GetStudent retrieves a student by ID.
func (s *Store) GetStudent(ctx context.Context, id string) (*learn.StudentState, error) {
	start := time.Now()

	var student learn.StudentState
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(studentKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrStudentNotFound
		}
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &student)
		})
	})
	metrics.RecordStoreOp("get", "student", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := student.Validate(); err != nil {
		return nil, fmt.Errorf("stored student %s: %w", id, err)
	}
	return &student, nil
}

// DeleteStudent removes a student and their recommendation history.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(studentKeyPrefix + id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete student: %w", err)
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recommendationKeyPrefix + id + ":")
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete recommendation: %w", err)
			}
		}
		return nil
	})
	metrics.RecordStoreOp("delete", "student", time.Since(start), err)
	return err
}

// ListStudents returns all student records.
func (s *Store) ListStudents(ctx context.Context) ([]*learn.StudentState, error) {
	start := time.Now()

	var students []*learn.StudentState
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(studentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var student learn.StudentState
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &student)
			})
			if err != nil {
				return fmt.Errorf("unmarshal student: %w", err)
			}
			students = append(students, &student)
		}
		return nil
	})
	metrics.RecordStoreOp("list", "student", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return students, nil
}

// CountStudents returns the number of stored students.
func (s *Store) CountStudents(ctx context.Context) (int, error) {
	return s.count(studentKeyPrefix)
}
