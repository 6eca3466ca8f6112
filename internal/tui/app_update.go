package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"tudu-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(countTick(), usageTick(), m.measureUsage())
}

func countTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countTickMsg{} })
}

func usageTick() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg { return usageTickMsg{} })
}

// measureUsage probes on-disk usage off the update loop. Estimation failure
// degrades to "no warning", never to an error screen.
func (m appModel) measureUsage() tea.Cmd {
	s := m.store
	quota := m.cfg.QuotaBytes
	return func() tea.Msg {
		u, _ := s.EstimateUsage(quota)
		return usageMsg{usage: u}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case countTickMsg:
		// The status bar count always comes from a fresh Count, not from
		// the rendered snapshot.
		if m.db.Ready() {
			if n, err := m.db.Count(context.Background()); err == nil {
				m.count = n
			}
		}
		return m, countTick()

	case usageTickMsg:
		return m, tea.Batch(usageTick(), m.measureUsage())

	case usageMsg:
		m.usage = msg.usage
		m.usageWarning = msg.usage.OverThreshold()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdding:
			return m.updateAdding(msg)
		case modeEditing:
			return m.updateEditing(msg)
		case modeConfirmReset:
			return m.updateConfirmReset(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.alert = ""

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveAppState()
		return m, tea.Quit

	case "up", "k":
		if m.grabbed {
			m.moveGrabbed(-1)
		} else if m.cursor > 0 {
			m.cursor--
			m.arm.Reset()
		}
		return m, nil

	case "down", "j":
		if m.grabbed {
			m.moveGrabbed(1)
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.arm.Reset()
		}
		return m, nil

	case "g":
		// Grab/drop: the drag handle. Dropping persists the order read
		// from the current visual arrangement.
		if m.grabbed {
			return m.drop(ctx)
		}
		if len(m.rows) > 1 {
			m.grabbed = true
			m.arm.Reset()
		}
		return m, nil

	case "esc":
		if m.grabbed {
			// Cancel the drag: discard the visual arrangement.
			m.grabbed = false
			m.reload()
		}
		return m, nil

	case " ", "x":
		t, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if _, err := m.db.Toggle(ctx, t); err != nil {
			return m.writeFailed(err)
		}
		m.reload()
		return m, nil

	case "d":
		t, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if err := m.db.Delete(ctx, t.ID); err != nil {
			return m.writeFailed(err)
		}
		m.reload()
		return m, nil

	case "a":
		if !m.db.Ready() {
			m.alert = "The task database is still loading or failed to open. Try reopening the app."
			return m, nil
		}
		m.mode = modeAdding
		m.arm.Reset()
		m.input.Focus()
		return m, nil

	case "enter":
		if m.grabbed {
			return m.drop(ctx)
		}
		t, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		// Label activation: two presses on the same row within the window
		// open the inline editor.
		if m.arm.Press(t.ID, time.Now()) {
			m.mode = modeEditing
			m.editingID = t.ID
			m.editingText = t.Text
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			m.input.Focus()
		}
		return m, nil

	case "r":
		m.mode = modeConfirmReset
		m.arm.Reset()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		_, err := m.db.Add(context.Background(), m.input.Value())
		if errors.Is(err, store.ErrEmptyText) {
			// Silent no-op, like submitting the empty form.
			return m, nil
		}
		if err != nil {
			// The input keeps its text: it is only cleared once the add
			// transaction committed.
			return m.writeFailed(err)
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.reload()
		m.cursor = len(m.rows) - 1
		return m, nil

	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		// Commit (tab acts as focus loss). Unchanged or empty text
		// discards the edit; either way the view reloads from the store.
		return m.commitEdit()

	case "esc":
		return m.finishEdit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) commitEdit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || text == m.editingText {
		return m.finishEdit()
	}
	if _, err := m.db.UpdateText(context.Background(), m.editingID, text); err != nil {
		mm, cmd := m.finishEdit()
		fm := mm.(appModel)
		fm.alert = writeFailedAlert(err)
		return fm, cmd
	}
	return m.finishEdit()
}

// finishEdit is the single terminal transition out of edit mode: it clears
// the editor, defensively resets the armed state and reloads the full view.
func (m appModel) finishEdit() (tea.Model, tea.Cmd) {
	m.mode = modeList
	m.editingID = 0
	m.editingText = ""
	m.input.SetValue("")
	m.input.Blur()
	m.arm.Reset()
	m.reload()
	return m, nil
}

func (m appModel) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		_ = m.db.Close()
		_ = m.store.Reset(store.ResetOptions{AllDatabases: true})
		// Forced reload: reopen a fresh store and rebuild from scratch.
		db, err := m.store.Open(context.Background())
		if err != nil {
			db = nil
		}
		m.db = db
		m.mode = modeList
		m.cursor = 0
		m.reload()
		return m, m.measureUsage()
	}
	m.mode = modeList
	return m, nil
}

func (m appModel) drop(ctx context.Context) (tea.Model, tea.Cmd) {
	m.grabbed = false
	if err := m.db.Reorder(ctx, m.visualIDs()); err != nil {
		return m.writeFailed(err)
	}
	m.reload()
	return m, nil
}

// moveGrabbed shifts the grabbed row by delta within the visible list only.
// Nothing is persisted until the drop.
func (m *appModel) moveGrabbed(delta int) {
	to := m.cursor + delta
	if to < 0 || to >= len(m.rows) {
		return
	}
	m.rows[m.cursor], m.rows[to] = m.rows[to], m.rows[m.cursor]
	m.cursor = to
}

func (m appModel) writeFailed(err error) (tea.Model, tea.Cmd) {
	// Transaction failures leave the UI in its pre-transaction state and
	// are never retried; the user repeats the action.
	m.alert = writeFailedAlert(err)
	m.reload()
	return m, nil
}

func writeFailedAlert(err error) string {
	if errors.Is(err, store.ErrNotReady) {
		return "The task database is still loading or failed to open. Try reopening the app."
	}
	return "Write failed: " + err.Error()
}
