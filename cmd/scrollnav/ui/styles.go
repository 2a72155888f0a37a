// Package ui is the terminal host for the scroll navigation engine: a
// bubbletea pager with navigation dots, a progress bar and prev/next controls.
package ui

import (
	"os"
	"strconv"
	"strings"

	"scrollnav/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette
var (
	LightForeground = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#8a94a6")
	LightTrack      = lipgloss.Color("#d6dae0")

	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkMuted      = lipgloss.Color("#6b7a94")
	DarkTrack      = lipgloss.Color("#2a3850")

	Accent = lipgloss.Color("#8BC34A")
	Info   = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Track      lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Muted: LightMuted, Track: LightTrack, Accent: Accent}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Muted: DarkMuted, Track: DarkTrack, Accent: Accent, IsDark: true}
}

// ResolveTheme maps a config theme name to a Theme; auto inspects the terminal.
func ResolveTheme(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	}
	return DetectTheme()
}

// DetectTheme guesses from COLORFGBG ("fg;bg"); dark backgrounds are 0-6 and 8.
// Unknown terminals get the dark theme.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) >= 2 {
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}
	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Muted   lipgloss.Style
	Notice  lipgloss.Style
	Control lipgloss.Style

	DotActive lipgloss.Style
	DotIdle   lipgloss.Style
	DotFill   lipgloss.Style
	DotLabel  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107")).
			Bold(true),

		Control: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Accent).
			Padding(0, 1).
			Bold(true),

		DotActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		DotIdle: lipgloss.NewStyle().
			Foreground(theme.Track),

		DotFill: lipgloss.NewStyle().
			Foreground(Info),

		DotLabel: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}
