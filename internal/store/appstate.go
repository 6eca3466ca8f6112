package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	"github.com/natefinch/atomic"
)

// AppState is the small key-value sidecar next to the database: last
// selected row, whether the quota warning was dismissed, and free-form
// values. It is intentionally best-effort; callers tolerate missing or
// invalid data. The reset routine deletes it along with the database.
type AppState struct {
	Version int `json:"version"`

	LastSelectedID int64 `json:"lastSelectedId,omitempty"`

	UsageWarningDismissed bool `json:"usageWarningDismissed,omitempty"`

	Values map[string]string `json:"values,omitempty"`
}

func (s Store) LoadAppState() (*AppState, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &AppState{Version: 1}, nil
		}
		return nil, err
	}
	var st AppState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &AppState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveAppState(st *AppState) error {
	if st == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(s.statePath(), bytes.NewReader(b))
}
