package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	bolt "go.etcd.io/bbolt"

	"episodic/internal/domain"
)

const (
	appName       = "episodic"
	schemaVersion = 1

	// dbFileName is the canonical name of the backing file. Exports are
	// written under this name and imports replace it.
	dbFileName = "series.db"
)

// Bucket names
var bucketSeries = []byte("series")

// DirName returns the schema-versioned datastore directory name.
// Bumping schemaVersion moves to a fresh directory; directories of other
// versions are never touched.
func DirName() string {
	return fmt.Sprintf("%s-db-%d", appName, schemaVersion)
}

// CanonicalPath returns the backing file path under dataDir.
func CanonicalPath(dataDir string) string {
	return filepath.Join(dataDir, DirName(), dbFileName)
}

// LockPath returns the sidecar lock file guarding the backing file.
func LockPath(dataDir string) string {
	return CanonicalPath(dataDir) + ".lock"
}

// Store is the shared handle to the tracked-series collection. The engine
// is safe for concurrent use; open one Store and pass it around explicitly.
type Store struct {
	db        *bolt.DB
	lock      *flock.Flock
	path      string
	recovered bool
	logger    *slog.Logger
}

// Open opens (or creates) the datastore under dataDir. The handle holds a
// shared file lock until Close so a collection transfer cannot replace the
// backing file mid-session.
func Open(dataDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := CanonicalPath(dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create datastore directory: %w", err)
	}

	// Recorded before the engine creates the file on first open.
	_, statErr := os.Stat(path)
	recovered := statErr == nil

	lock := flock.New(LockPath(dataDir))
	locked, err := lock.TryRLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire datastore lock: %w", err)
	}
	if !locked {
		return nil, domain.ErrDatastoreBusy
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to open series database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSeries)
		return err
	})
	if err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("failed to create series bucket: %w", err)
	}

	logger.Info("opened datastore", "path", path, "recovered", recovered)

	return &Store{
		db:        db,
		lock:      lock,
		path:      path,
		recovered: recovered,
		logger:    logger,
	}, nil
}

// Recovered reports whether the backing file existed before this open.
func (s *Store) Recovered() bool {
	return s.recovered
}

// Path returns the canonical backing file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the engine and the shared lock.
func (s *Store) Close() error {
	err := s.db.Close()
	if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
		err = unlockErr
	}
	return err
}

// ReadCollection opens an arbitrary database file read-only and decodes
// every record in it. This is the validity gate for imports: the same
// decode path the live store uses, with no side effects on the file.
func ReadCollection(path string) ([]domain.TrackedSeries, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true, Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database file: %w", err)
	}
	defer db.Close()

	var out []domain.TrackedSeries
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSeries)
		if b == nil {
			return errors.New("series bucket missing")
		}
		return b.ForEach(func(k, v []byte) error {
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
