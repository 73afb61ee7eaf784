// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
)

// maxShownSuggestions caps the suggestion lines rendered under the input.
const maxShownSuggestions = 5

// SuggestFunc returns history entries starting with prefix.
type SuggestFunc func(prefix string) []string

// SearchInput wraps a bubbles textinput with history autocomplete.
// Tab accepts the first suggestion.
type SearchInput struct {
	textinput   textinput.Model
	styles      *styles.Styles
	suggest     SuggestFunc
	suggestions []string
	width       int
}

// NewSearchInput creates a new search input component. suggest may be nil.
func NewSearchInput(s *styles.Styles, suggest SuggestFunc) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter keyword..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.ShowSuggestions = true

	return &SearchInput{
		textinput: ti,
		styles:    s,
		suggest:   suggest,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages and refreshes suggestions when the text changes.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	before := s.textinput.Value()

	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)

	if s.textinput.Value() != before {
		s.RefreshSuggestions()
	}
	return s, cmd
}

// RefreshSuggestions re-queries history for the current value.
func (s *SearchInput) RefreshSuggestions() {
	s.suggestions = nil
	if s.suggest != nil {
		s.suggestions = s.suggest(s.textinput.Value())
	}
	s.textinput.SetSuggestions(s.suggestions)
}

// View renders the search input and any suggestions.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Keyword: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	view := lipgloss.JoinHorizontal(lipgloss.Center, label, input)

	shown := s.visibleSuggestions()
	if len(shown) == 0 {
		return view
	}

	lines := make([]string, 0, len(shown))
	for _, suggestion := range shown {
		lines = append(lines, s.styles.Suggestion.Render("  ↳ "+suggestion))
	}
	return view + "\n" + strings.Join(lines, "\n")
}

func (s *SearchInput) visibleSuggestions() []string {
	if !s.textinput.Focused() {
		return nil
	}

	value := s.textinput.Value()
	shown := make([]string, 0, maxShownSuggestions)
	for _, suggestion := range s.suggestions {
		if strings.EqualFold(suggestion, value) {
			continue
		}
		shown = append(shown, suggestion)
		if len(shown) == maxShownSuggestions {
			break
		}
	}
	return shown
}

// Suggestions returns the current history suggestions.
func (s *SearchInput) Suggestions() []string {
	return s.suggestions
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.RefreshSuggestions()
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	s.textinput.Width = max(width-14, 20)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.RefreshSuggestions()
}
