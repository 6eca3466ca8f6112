package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The list must remain readable on both light and dark terminal
// backgrounds, so colors are adaptive and "faint" is reserved for done rows
// on dark terminals (faint on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(ac("235", "255"))

	styleSelected = lipgloss.NewStyle().
			Foreground(ac("235", "255")).
			Background(ac("#e9e9e9", "#262626"))

	styleGrabbed = lipgloss.NewStyle().
			Foreground(ac("26", "39")).
			Background(ac("#e9e9e9", "#262626")).
			Bold(true)

	// Strikethrough is applied iff the task is done.
	styleDone = lipgloss.NewStyle().Strikethrough(true).Foreground(ac("240", "243"))

	styleMuted = lipgloss.NewStyle().Foreground(ac("240", "245"))

	styleAlert = lipgloss.NewStyle().Foreground(ac("124", "203"))

	styleWarn = lipgloss.NewStyle().Foreground(ac("130", "214"))
)

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}
