package transfer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"episodic/internal/datastore"
	"episodic/internal/domain"
)

// DataDirFunc resolves the application data directory. Transfer needs
// nothing else from configuration.
type DataDirFunc func() (string, error)

// Manager copies the collection's backing file in and out of the
// datastore directory. Both directions take the datastore lock
// exclusively, so transfers fail fast while a store handle is open.
type Manager struct {
	dataDir DataDirFunc
	logger  *slog.Logger
}

// New creates a transfer manager.
func New(dataDir DataDirFunc, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dataDir: dataDir, logger: logger}
}

// paths resolves the canonical backing file and its lock file.
func (m *Manager) paths() (string, string, error) {
	dir, err := m.dataDir()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrNoDataDir, err)
	}
	return datastore.CanonicalPath(dir), datastore.LockPath(dir), nil
}

// Export copies the backing file verbatim into destDir under its canonical
// filename and returns the written path.
func (m *Manager) Export(destDir string) (string, error) {
	src, lockPath, err := m.paths()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("failed to read collection: %w", err)
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("failed to acquire datastore lock: %w", err)
	}
	if !locked {
		return "", domain.ErrDatastoreBusy
	}
	defer lock.Unlock()

	dest := filepath.Join(destDir, filepath.Base(src))
	if err := copyFile(src, dest); err != nil {
		return "", fmt.Errorf("failed to export collection: %w", err)
	}

	m.logger.Info("exported collection", "from", src, "to", dest)
	return dest, nil
}

// Import validates srcFile as a series collection and, if valid, replaces
// the active backing file with a verbatim copy. The active collection is
// untouched when validation fails.
func (m *Manager) Import(srcFile string) error {
	dest, lockPath, err := m.paths()
	if err != nil {
		return err
	}

	if _, err := os.Stat(srcFile); err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	collection, err := datastore.ReadCollection(srcFile)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCollection, err)
	}

	// The versioned directory must exist before the lock file can be
	// created inside it.
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create datastore directory: %w", err)
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire datastore lock: %w", err)
	}
	if !locked {
		return domain.ErrDatastoreBusy
	}
	defer lock.Unlock()

	if err := copyFile(srcFile, dest); err != nil {
		return fmt.Errorf("failed to import collection: %w", err)
	}

	m.logger.Info("imported collection", "from", srcFile, "series", len(collection))
	return nil
}

// copyFile copies src to dest through a temp file in the destination
// directory, renaming into place so a failed copy never leaves a partial
// file at dest.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
