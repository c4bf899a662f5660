package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor and "faint" styling is applied only
// on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent   lipgloss.TerminalColor = ac("162", "212") // magenta, fashion-forward
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	colorPositive lipgloss.TerminalColor = ac("28", "78")  // likes, confirmations
	colorNegative lipgloss.TerminalColor = ac("124", "203") // failures, removals

	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// forcedDarkBackground honors the STYLESWIPE_TUI_THEME override before any
// terminal query. Returns nil when the theme should be auto-detected.
func forcedDarkBackground() *bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STYLESWIPE_TUI_THEME")))
	switch v {
	case "dark":
		b := true
		return &b
	case "light":
		b := false
		return &b
	}
	return nil
}

// applyThemeOverride forces lipgloss's background detection when the user
// (or a test) pinned the theme. Querying the terminal can block on some
// emulators, so an explicit setting always wins.
func applyThemeOverride() {
	if forced := forcedDarkBackground(); forced != nil {
		lipgloss.SetHasDarkBackground(*forced)
		return
	}
	// Fall back to termenv's detection once, up front, so later style
	// construction never triggers a mid-frame terminal query.
	lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
}
