package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces the document body on a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Store is a write-once file cache for remote catalog documents.
// Documents live under root/<kind>/<key>.json and are never rewritten;
// staleness is handled by explicit invalidation only.
type Store struct {
	root   string
	logger *slog.Logger
	group  singleflight.Group
}

// New creates a cache store rooted at root.
func New(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, logger: logger}
}

// Path returns the file a resource is cached at.
func (s *Store) Path(res Resource) string {
	return filepath.Join(s.root, res.relPath())
}

// Get returns the cached document for res, fetching and storing it on a miss.
// Only a missing file counts as a miss; any other read failure is returned
// without invoking fetch. A fetch failure is returned and leaves no file behind.
// Concurrent misses on the same resource share a single fetch.
func (s *Store) Get(ctx context.Context, res Resource, fetch FetchFunc) ([]byte, error) {
	path := s.Path(res)

	data, err := os.ReadFile(path)
	if err == nil {
		s.logger.Debug("cache hit", "resource", res.String())
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cached %s: %w", res, err)
	}

	v, err, _ := s.group.Do(path, func() (interface{}, error) {
		// A shared fetch may have landed the file while we waited.
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}

		body, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.save(path, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body := v.([]byte)
	s.logger.Debug("cache fill", "resource", res.String(), "bytes", len(body))
	return body, nil
}

// Invalidate removes a cached document. Removing an absent one is not an error.
func (s *Store) Invalidate(res Resource) error {
	err := os.Remove(s.Path(res))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cached %s: %w", res, err)
	}
	s.logger.Debug("cache invalidated", "resource", res.String())
	return nil
}

// save writes a fetched document to disk. Failures are logged, never returned;
// the caller already holds the bytes it asked for.
func (s *Store) save(path string, data []byte) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.logger.Warn("failed to create cache directory", "error", err, "path", path)
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		s.logger.Warn("failed to write cache", "error", err, "path", path)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		s.logger.Warn("failed to write cache", "error", err, "path", path)
	}
}
