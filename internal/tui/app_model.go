package tui

import (
	"context"

	"tudu-cli/internal/config"
	"tudu-cli/internal/model"
	"tudu-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	cfg   config.Config
	store store.Store
	db    *store.DB

	// rows is the current snapshot, rebuilt from scratch after every
	// committed mutation. No incremental patching: the repository is the
	// single source of truth and task counts are small.
	rows   []model.Task
	cursor int

	// grabbed marks the cursor row as being moved. While grabbed, cursor
	// motion rearranges rows visually only; the drop persists the order.
	grabbed bool

	mode  mode
	input textinput.Model

	arm          editArm
	editingID    int64
	editingText  string // original label, to detect unchanged commits
	alert        string // user-facing error line; cleared on next action
	count        int
	usage        store.Usage
	usageWarning bool

	width  int
	height int
}

func newAppModel(cfg config.Config, s store.Store, db *store.DB) appModel {
	input := textinput.New()
	input.Placeholder = "task text"
	input.CharLimit = 0

	m := appModel{
		cfg:   cfg,
		store: s,
		db:    db,
		input: input,
	}
	m.reload()
	if st, err := s.LoadAppState(); err == nil {
		m.setCursorToID(st.LastSelectedID)
	}
	return m
}

// reload re-pulls the full snapshot and rebuilds the row slice. This is the
// sole way the visible list changes after a committed write. Read failures
// before the first successful load stay silent per the error taxonomy.
func (m *appModel) reload() {
	if !m.db.Ready() {
		m.rows = nil
		m.count = 0
		return
	}
	tasks, err := m.db.List(context.Background())
	if err != nil {
		return
	}
	m.rows = tasks
	m.count = len(tasks)
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) setCursorToID(id int64) {
	for i, t := range m.rows {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) currentRow() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Task{}, false
	}
	return m.rows[m.cursor], true
}

// visualIDs extracts row identity order from the view, not from a fresh
// snapshot. The drop is the one place the visual arrangement is
// authoritative.
func (m *appModel) visualIDs() []int64 {
	ids := make([]int64, len(m.rows))
	for i, t := range m.rows {
		ids[i] = t.ID
	}
	return ids
}

func (m *appModel) saveAppState() {
	st, err := m.store.LoadAppState()
	if err != nil {
		return
	}
	if t, ok := m.currentRow(); ok {
		st.LastSelectedID = t.ID
	}
	_ = m.store.SaveAppState(st)
}
