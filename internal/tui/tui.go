package tui

import (
	"tudu-cli/internal/config"
	"tudu-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive list. db may be nil (store open failed): reads
// stay silent and write attempts alert, until a reload succeeds.
func Run(cfg config.Config, s store.Store, db *store.DB) error {
	m := newAppModel(cfg, s, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
