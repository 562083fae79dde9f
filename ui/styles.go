// Package ui draws render-ready views in the terminal: bar and pie charts as
// proportional bars, tables, compact text and the per-item mode controls.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors of one color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	User       lipgloss.Color
	IsDark     bool
}

// DarkTheme is the default scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8884d8"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#2a3850"),
		Error:      lipgloss.Color("#e53935"),
		User:       lipgloss.Color("#82ca9d"),
		IsDark:     true,
	}
}

// LightTheme is the scheme for light terminals.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#5b57a8"),
		Muted:      lipgloss.Color("#8a94a6"),
		Border:     lipgloss.Color("#dce0e5"),
		Error:      lipgloss.Color("#c62828"),
		User:       lipgloss.Color("#2e7d5b"),
		IsDark:     false,
	}
}

// ThemeByName maps the configured theme name; anything but "light" is dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	User     lipgloss.Style
	Bot      lipgloss.Style
	Selected lipgloss.Style

	Control       lipgloss.Style
	ControlActive lipgloss.Style

	Card lipgloss.Style
}

// NewStyles builds the styles of a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).Padding(0, 1),
		Body:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		User:     lipgloss.NewStyle().Bold(true).Foreground(theme.User),
		Bot:      lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary).Padding(0, 1),

		Control:       lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),
		ControlActive: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Underline(true).Padding(0, 1),

		Card: lipgloss.NewStyle().Border(lipgloss.HiddenBorder()).Padding(0, 1),
	}
}

// DefaultStyles returns the dark styles.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
