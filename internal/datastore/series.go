package datastore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"episodic/internal/domain"
)

// seriesKey returns the big-endian key for a series id. Big-endian keys
// keep the bucket ordered numerically.
func seriesKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// Put inserts or replaces one tracked series record.
func (s *Store) Put(series *domain.TrackedSeries) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to encode series record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).Put(seriesKey(series.ID), data)
	})
}

// Get returns one tracked series record.
func (s *Store) Get(id int64) (*domain.TrackedSeries, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSeries).Get(seriesKey(id)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, domain.ErrSeriesNotTracked
	}

	var series domain.TrackedSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series record: %w", err)
	}
	return &series, nil
}

// Delete removes one tracked series record.
func (s *Store) Delete(id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeries)
		if b.Get(seriesKey(id)) == nil {
			return domain.ErrSeriesNotTracked
		}
		return b.Delete(seriesKey(id))
	})
}

// All returns every tracked series ordered by id.
func (s *Store) All() ([]domain.TrackedSeries, error) {
	var out []domain.TrackedSeries
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).ForEach(func(k, v []byte) error {
			var series domain.TrackedSeries
			if err := json.Unmarshal(v, &series); err != nil {
				return fmt.Errorf("failed to decode series record: %w", err)
			}
			out = append(out, series)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of tracked series.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketSeries).Stats().KeyN
		return nil
	})
	return n, err
}
