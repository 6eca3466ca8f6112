package tui

import (
	"context"
	"strings"
	"testing"

	"tudu-cli/internal/config"
	"tudu-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, texts ...string) appModel {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	db, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	for _, text := range texts {
		if _, err := db.Add(context.Background(), text); err != nil {
			t.Fatalf("seed %q: %v", text, err)
		}
	}
	return newAppModel(config.Config{Dir: s.Dir, QuotaBytes: config.DefaultQuotaBytes}, s, db)
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func typeText(m appModel, text string) appModel {
	for _, r := range text {
		mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = mm.(appModel)
	}
	return m
}

func rowTexts(m appModel) []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Text
	}
	return out
}

func TestUpdate_AddFlow(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "a")
	if m.mode != modeAdding {
		t.Fatalf("mode = %v, want adding", m.mode)
	}
	m = typeText(m, "Buy milk")
	m = press(m, "enter")

	if m.mode != modeList {
		t.Fatalf("mode = %v, want list after commit", m.mode)
	}
	if got := rowTexts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("rows = %v", got)
	}
	if m.input.Value() != "" {
		t.Fatal("input must be cleared after a committed add")
	}
}

func TestUpdate_AddEmptyKeepsInputAndStore(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "a")
	m = typeText(m, "   ")
	m = press(m, "enter")

	if m.mode != modeAdding {
		t.Fatal("empty submit should stay in the form")
	}
	if m.input.Value() != "   " {
		t.Fatal("input is only cleared when the add committed")
	}
	if len(m.rows) != 0 {
		t.Fatalf("store changed on empty add: %v", rowTexts(m))
	}
}

func TestUpdate_ToggleTwiceRestoresDone(t *testing.T) {
	m := newTestModel(t, "flip me")

	m = press(m, "space")
	if !m.rows[0].Done {
		t.Fatal("first toggle should set done")
	}
	m = press(m, "space")
	if m.rows[0].Done {
		t.Fatal("second toggle should clear done")
	}
}

func TestUpdate_DeleteRemovesRow(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = press(m, "d")
	if got := rowTexts(m); len(got) != 1 || got[0] != "b" {
		t.Fatalf("rows = %v", got)
	}
}

func TestUpdate_DoubleEnterEntersEditAndCommits(t *testing.T) {
	m := newTestModel(t, "Buy milk")

	m = press(m, "enter")
	if m.mode != modeList {
		t.Fatal("single activation must not enter edit mode")
	}
	m = press(m, "enter")
	if m.mode != modeEditing {
		t.Fatal("double activation within the window should enter edit mode")
	}

	m.input.SetValue("Buy oat milk")
	m = press(m, "enter")

	if m.mode != modeList {
		t.Fatal("commit should leave edit mode")
	}
	if got := rowTexts(m); got[0] != "Buy oat milk" {
		t.Fatalf("rows = %v", got)
	}

	// Fresh snapshot from the store, not just the view.
	tasks, err := m.db.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks[0].Text != "Buy oat milk" || tasks[0].Done {
		t.Fatalf("stored task = %+v", tasks[0])
	}
}

func TestUpdate_EditCancelDiscards(t *testing.T) {
	m := newTestModel(t, "original")

	m = press(m, "enter", "enter")
	m.input.SetValue("changed")
	m = press(m, "esc")

	if got := rowTexts(m); got[0] != "original" {
		t.Fatalf("cancel must not persist: %v", got)
	}
	if m.arm.armed {
		t.Fatal("armed state must be reset on the terminal transition")
	}
}

func TestUpdate_EditUnchangedOrEmptyDoesNotWrite(t *testing.T) {
	m := newTestModel(t, "same")

	m = press(m, "enter", "enter")
	m = press(m, "enter") // unchanged commit
	if got := rowTexts(m); got[0] != "same" {
		t.Fatalf("rows = %v", got)
	}

	m = press(m, "enter", "enter")
	m.input.SetValue("  ")
	m = press(m, "tab") // focus loss with empty text discards
	if got := rowTexts(m); got[0] != "same" {
		t.Fatalf("empty commit must discard: %v", got)
	}
}

func TestUpdate_CursorMoveReArmsOnNewRow(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = press(m, "enter", "j", "enter")
	if m.mode == modeEditing {
		t.Fatal("activations on different rows must never combine")
	}
	m = press(m, "enter")
	if m.mode != modeEditing {
		t.Fatal("double activation on the second row should enter edit mode")
	}
	if m.editingText != "b" {
		t.Fatalf("editing %q, want b", m.editingText)
	}
}

func TestUpdate_GrabMoveDropPersistsOrder(t *testing.T) {
	m := newTestModel(t, "a", "b", "c")

	// Grab "a", move it to the bottom, drop.
	m = press(m, "g", "j", "j", "g")

	want := []string{"b", "c", "a"}
	if got := rowTexts(m); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("visual order = %v, want %v", got, want)
	}

	// The order survives a full snapshot reload.
	m.reload()
	if got := rowTexts(m); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("persisted order = %v, want %v", got, want)
	}
}

func TestUpdate_GrabCancelRestoresSnapshot(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m = press(m, "g", "j", "esc")
	if m.grabbed {
		t.Fatal("esc should cancel the grab")
	}
	if got := rowTexts(m); got[0] != "a" || got[1] != "b" {
		t.Fatalf("cancelled drag must restore the persisted order: %v", got)
	}
}

func TestUpdate_ResetConfirmWipesAndReopens(t *testing.T) {
	m := newTestModel(t, "doomed")

	m = press(m, "r")
	if m.mode != modeConfirmReset {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m = press(m, "y")

	if !m.db.Ready() {
		t.Fatal("store should reopen after reset")
	}
	if len(m.rows) != 0 {
		t.Fatalf("rows after reset: %v", rowTexts(m))
	}
}

func TestUpdate_ResetDeclinedKeepsTasks(t *testing.T) {
	m := newTestModel(t, "keep me")

	m = press(m, "r", "n")
	if m.mode != modeList {
		t.Fatal("any other key should dismiss the confirm modal")
	}
	if got := rowTexts(m); len(got) != 1 || got[0] != "keep me" {
		t.Fatalf("rows = %v", got)
	}
}

func TestUpdate_CountTickRefreshesFromStore(t *testing.T) {
	m := newTestModel(t, "a")

	// A second writer adds behind the TUI's back.
	if _, err := m.db.Add(context.Background(), "b"); err != nil {
		t.Fatalf("add: %v", err)
	}

	mm, _ := m.Update(countTickMsg{})
	m = mm.(appModel)
	if m.count != 2 {
		t.Fatalf("count = %d, want 2", m.count)
	}
}

func TestUpdate_UsageWarningOverThreshold(t *testing.T) {
	m := newTestModel(t)

	mm, _ := m.Update(usageMsg{usage: store.Usage{UsedBytes: 90, QuotaBytes: 100}})
	m = mm.(appModel)
	if !m.usageWarning {
		t.Fatal("90% of quota should warn")
	}
	if !strings.Contains(m.View(), "Storage usage") {
		t.Fatal("warning should render in the status area")
	}
}

func TestView_DoneRowRendersCheckedBox(t *testing.T) {
	m := newTestModel(t, "done task")
	m = press(m, "space")

	view := m.View()
	if !strings.Contains(view, "[x]") {
		t.Fatalf("done row should render a checked box:\n%s", view)
	}
}

func TestStatusLine_PluralizesUnit(t *testing.T) {
	m := newTestModel(t, "only")
	mm, _ := m.Update(countTickMsg{})
	m = mm.(appModel)
	if !strings.Contains(m.statusLine(), "1 task") || strings.Contains(m.statusLine(), "1 tasks") {
		t.Fatalf("status = %q", m.statusLine())
	}

	m2 := newTestModel(t, "a", "b")
	mm2, _ := m2.Update(countTickMsg{})
	m2 = mm2.(appModel)
	if !strings.Contains(m2.statusLine(), "2 tasks") {
		t.Fatalf("status = %q", m2.statusLine())
	}
}
