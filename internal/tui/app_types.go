package tui

import "tudu-cli/internal/store"

type mode int

const (
	modeList mode = iota
	modeAdding
	modeEditing
	modeConfirmReset
)

// countTickMsg drives the 1s task-count refresh in the status bar.
type countTickMsg struct{}

// usageTickMsg drives the 60s storage usage probe.
type usageTickMsg struct{}

type usageMsg struct {
	usage store.Usage
}
