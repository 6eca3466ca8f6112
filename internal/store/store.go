package store

import (
	"os"
	"path/filepath"
)

const (
	dbFileName    = "tudu.sqlite"
	stateFileName = "state.json"
	cacheDirName  = "cache"
)

// Store locates the on-disk layout for one data directory:
// the task database, the key-value app state sidecar, and the cache dir.
type Store struct {
	Dir string
}

// DefaultDir resolves the data directory: $TUDU_DIR if set, otherwise
// <user-config-dir>/tudu.
func DefaultDir() (string, error) {
	if v := os.Getenv("TUDU_DIR"); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tudu"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) statePath() string {
	return filepath.Join(s.Dir, stateFileName)
}

func (s Store) cacheDir() string {
	return filepath.Join(s.Dir, cacheDirName)
}
