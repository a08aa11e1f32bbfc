// Package cache persists registry responses between runs. Version
// records are keyed by file hash and project records by project id;
// entries expire after a configurable TTL so stale registry data ages
// out on its own.
package cache

import (
	"bytes"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/jamesainslie/mrpack/pkg/mrpack/modrinth"
)

// ErrNotFound is returned when a cache entry doesn't exist.
var ErrNotFound = errors.New("cache entry not found")

// Store wraps Badger for cache operations.
type Store struct {
	db *badger.DB
}

// OpenStore opens or creates a cache store at the given path.
func OpenStore(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetVersion retrieves a cached version record by file hash.
func (s *Store) GetVersion(hash string) (modrinth.Version, error) {
	var version modrinth.Version
	err := s.get(versionKey(hash), &version)
	return version, err
}

// GetProject retrieves a cached project record by project id.
func (s *Store) GetProject(id string) (modrinth.Project, error) {
	var project modrinth.Project
	err := s.get(projectKey(id), &project)
	return project, err
}

func (s *Store) get(key []byte, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(data []byte) error {
			return decode(data, v)
		})
	})
}

// PutVersions stores version records in a single batch. A ttl of zero
// stores the records without expiry.
func (s *Store) PutVersions(versions map[string]modrinth.Version, ttl time.Duration) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for hash, version := range versions {
		if err := setEntry(wb, versionKey(hash), version, ttl); err != nil {
			return err
		}
	}

	return wb.Flush()
}

// PutProjects stores project records in a single batch. A ttl of zero
// stores the records without expiry.
func (s *Store) PutProjects(projects []modrinth.Project, ttl time.Duration) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, project := range projects {
		if err := setEntry(wb, projectKey(project.ID), project, ttl); err != nil {
			return err
		}
	}

	return wb.Flush()
}

func setEntry(wb *badger.WriteBatch, key []byte, v any, ttl time.Duration) error {
	value, err := encode(v)
	if err != nil {
		return err
	}

	entry := badger.NewEntry(key, value)
	if ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return wb.SetEntry(entry)
}

// Clear removes all cached records.
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// Stats summarizes the live records in the store. Expired entries are
// not counted.
type Stats struct {
	Versions int
	Projects int
}

// Stats counts the live records per kind.
func (s *Store) Stats() (Stats, error) {
	var stats Stats

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			switch {
			case bytes.HasPrefix(key, versionKeyPrefix):
				stats.Versions++
			case bytes.HasPrefix(key, projectKeyPrefix):
				stats.Projects++
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}
