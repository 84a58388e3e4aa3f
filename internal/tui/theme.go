package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must remain readable on both light and dark terminal backgrounds, so colors are
// adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorSurfaceFg  = ac("235", "252")
	colorControlBg  = ac("252", "235")
	colorInputBg    = ac("254", "234")
	colorAccent     = ac("27", "62")
	colorAccentFg   = ac("255", "235")
	colorDone       = ac("28", "40")
	colorBusy       = ac("130", "214")
	colorErrorFg    = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleNavActive() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
}

func styleNavLink() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorControlBg).Padding(0, 1)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Width(12)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleSuccess() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDone)
}

// applyColorProfilePreference honors NO_COLOR and otherwise follows the terminal. CLICOLOR is
// ignored on purpose: it can disable colors inside an alt-screen program.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference picks the light or dark palette.
//
// Priority:
// 1) MENTORLINK_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg", bg < 7 means dark)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MENTORLINK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
