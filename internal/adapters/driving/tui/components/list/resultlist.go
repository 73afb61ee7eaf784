// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// linesPerResult is the rendered height of one match.
const linesPerResult = 2

// FavoriteFunc reports whether a path is a favorite.
type FavoriteFunc func(path string) bool

// ResultList displays search matches in a navigable list.
type ResultList struct {
	results    []domain.MatchRecord
	selected   int
	styles     *styles.Styles
	isFavorite FavoriteFunc
	width      int
	height     int
}

// NewResultList creates a new result list component. isFavorite may be nil.
func NewResultList(s *styles.Styles, isFavorite FavoriteFunc) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles:     s,
		isFavorite: isFavorite,
		width:      80,
		height:     10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(r.results)*linesPerResult+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Matches (%d)", len(r.results)))
	lines = append(lines, header, "")

	visibleCount := max((r.height-2)/linesPerResult, 1)
	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one match as a title line and a context line.
func (r *ResultList) renderResult(index int, m *domain.MatchRecord) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	star := " "
	if r.isFavorite != nil && r.isFavorite(m.FilePath) {
		star = "★"
	}

	name := truncate(m.FileName, max(r.width-20, 10))
	page := fmt.Sprintf("page %d", m.Page)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%s %s  %s", indicator, star, name, page))
	} else {
		titleLine = r.styles.Normal.Render(indicator) +
			r.styles.Favorite.Render(star) + " " +
			r.styles.Normal.Render(name+"  ") +
			r.styles.Muted.Render(page)
	}

	return titleLine + "\n" + "      " + r.renderSnippet(m)
}

// renderSnippet highlights the keyword within the context words.
func (r *ResultList) renderSnippet(m *domain.MatchRecord) string {
	before := strings.Join(m.ContextBefore, " ")
	after := strings.Join(m.ContextAfter, " ")

	parts := []string{r.styles.Muted.Render("…")}
	if before != "" {
		parts = append(parts, r.styles.Muted.Render(before))
	}
	parts = append(parts, r.styles.Keyword.Render(m.Keyword))
	if after != "" {
		parts = append(parts, r.styles.Muted.Render(after))
	}
	parts = append(parts, r.styles.Muted.Render("…"))
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetResults replaces the list contents and resets the selection.
func (r *ResultList) SetResults(results []domain.MatchRecord) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.MatchRecord {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected match, or nil if none.
func (r *ResultList) SelectedResult() *domain.MatchRecord {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
