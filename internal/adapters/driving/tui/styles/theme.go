// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Highlight  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#D9480F"), // Burnt orange
		Secondary:  lipgloss.Color("#1C7ED6"), // Blue
		Foreground: lipgloss.Color("#E9ECEF"),
		Muted:      lipgloss.Color("#868E96"),
		Highlight:  lipgloss.Color("#FCC419"), // Amber
		Success:    lipgloss.Color("#51CF66"),
		Warning:    lipgloss.Color("#FAB005"),
		Error:      lipgloss.Color("#FA5252"),
		Border:     lipgloss.Color("#495057"),
		Bar:        lipgloss.Color("#212529"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Keyword marks the searched term inside a context snippet.
	Keyword lipgloss.Style

	// Favorite marks favorite files in lists.
	Favorite lipgloss.Style

	// Suggestion renders history suggestions under the input.
	Suggestion lipgloss.Style

	// Tab and ActiveTab render the history list switcher.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tab := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		Keyword: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Highlight),

		Favorite: lipgloss.NewStyle().
			Foreground(theme.Highlight),

		Suggestion: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Tab: tab,
		ActiveTab: tab.
			Bold(true).
			Foreground(theme.Foreground).
			Underline(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
