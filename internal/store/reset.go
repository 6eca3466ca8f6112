package store

import (
	"os"
	"path/filepath"
	"time"
)

// retryDelay is how long Reset waits before retrying a blocked removal.
// Mirrors the "deletion blocked, force reload after a delay" behavior: the
// wipe proceeds either way.
const retryDelay = time.Second

// ResetOptions controls the full-reset routine.
type ResetOptions struct {
	// AllDatabases additionally sweeps every *.sqlite database under the
	// data dir, not just the named one. When the sweep fails it falls back
	// to deleting only the named database.
	AllDatabases bool
}

// Reset irreversibly wipes all local persistent state: the cache dir, the
// key-value app state, and the database files outright (including WAL/SHM
// sidecars). Callers must hold an explicit user confirmation and must have
// closed their DB handle; an open handle from another process can block the
// removal, in which case Reset retries once after a fixed delay and then
// proceeds regardless.
func (s Store) Reset(opts ResetOptions) error {
	// Caches first, then key-value state, then the database(s). Failures
	// on the early steps never prevent the later ones.
	_ = os.RemoveAll(s.cacheDir())
	removeWithRetry(s.statePath())

	if opts.AllDatabases {
		if err := s.removeAllDatabases(); err == nil {
			return nil
		}
		// Enumeration failed; fall back to the named database only.
	}
	s.removeDatabase(s.dbPath())
	return nil
}

func (s Store) removeDatabase(path string) {
	removeWithRetry(path)
	removeWithRetry(path + "-wal")
	removeWithRetry(path + "-shm")
}

func (s Store) removeAllDatabases() error {
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*.sqlite"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		s.removeDatabase(m)
	}
	return nil
}

func removeWithRetry(path string) {
	if err := os.Remove(path); err == nil || os.IsNotExist(err) {
		return
	}
	time.Sleep(retryDelay)
	_ = os.Remove(path)
}
