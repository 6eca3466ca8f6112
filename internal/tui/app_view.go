package tui

import (
	"fmt"
	"strings"

	"tudu-cli/internal/model"
)

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("tudu"))
	b.WriteString("\n\n")

	switch {
	case !m.db.Ready():
		b.WriteString(styleAlert.Render("The task database failed to open. All changes are disabled until a successful reopen."))
		b.WriteString("\n")
	case len(m.rows) == 0 && m.mode != modeAdding:
		b.WriteString(styleMuted.Render("No tasks. Press a to add one."))
		b.WriteString("\n")
	}

	for i, t := range m.rows {
		if m.mode == modeEditing && t.ID == m.editingID {
			b.WriteString("  " + m.input.View())
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	if m.mode == modeAdding {
		b.WriteString("\n> " + m.input.View())
		b.WriteString("\n")
	}

	if m.mode == modeConfirmReset {
		b.WriteString("\n")
		b.WriteString(styleAlert.Render("Delete every task and reset the app? This cannot be undone. (y/N)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// renderRow rebuilds one row from the snapshot: drag handle, checkbox,
// label (struck through iff done) and delete hint are all derived from the
// task record, never from prior render state.
func (m appModel) renderRow(i int, t model.Task) string {
	handle := "≡"
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}

	label := t.Text
	if t.Done {
		label = faintIfDark(styleDone).Render(label)
	}
	row := fmt.Sprintf("%s %s %s", handle, check, label)

	switch {
	case i == m.cursor && m.grabbed:
		return styleGrabbed.Render("↕ " + row)
	case i == m.cursor:
		return styleSelected.Render("  " + row)
	default:
		return "  " + row
	}
}

func (m appModel) statusLine() string {
	// Pluralize on count != 1, fed by the 1s count tick.
	unit := "tasks"
	if m.count == 1 {
		unit = "task"
	}
	parts := []string{fmt.Sprintf("%d %s", m.count, unit)}

	if m.grabbed {
		parts = append(parts, "moving: ↑/↓ then g to drop, esc to cancel")
	} else {
		parts = append(parts, "a add · space toggle · d delete · enter×2 edit · g move · r reset · q quit")
	}
	line := styleMuted.Render(strings.Join(parts, "  ·  "))

	if m.alert != "" {
		line += "\n" + styleAlert.Render(m.alert)
	}
	if m.usageWarning {
		line += "\n" + styleWarn.Render(fmt.Sprintf(
			"Storage usage at %.0f%% of the configured budget. Consider running reset (r).", m.usage.Percent()))
	}
	return line
}
