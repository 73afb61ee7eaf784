// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService  driving.SearchService
	actionService  driving.ResultActionService
	historyService driving.HistoryService
	ctx            context.Context
	cancel         context.CancelFunc
	seq            uint64 // last search started; older completions are stale
	root           string
	opts           domain.SearchOptions

	report     *domain.SearchReport
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view over root. actionService and
// historyService may be nil; the related features are then disabled.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	root string,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
	historyService driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	var suggest input.SuggestFunc
	var isFavorite list.FavoriteFunc
	if historyService != nil {
		suggest = historyService.Suggest
		isFavorite = historyService.IsFavorite
	}

	return &View{
		styles:         s,
		keymap:         km,
		input:          input.NewSearchInput(s, suggest),
		list:           list.NewResultList(s, isFavorite),
		statusbar:      status.NewBar(s, km),
		searchService:  searchService,
		actionService:  actionService,
		historyService: historyService,
		ctx:            context.Background(),
		root:           root,
		width:          80,
		height:         24,
		focusInput:     true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithOptions sets the options used for every search.
func (v *View) WithOptions(opts domain.SearchOptions) *View {
	v.opts = opts
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchRequested:
		v.input.SetValue(msg.Keyword)
		return v, v.startSearch(msg.Keyword)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.FileOpened:
		v.handleFileOpened(msg)
		return v, nil

	case messages.FavoriteToggled:
		v.handleFavoriteToggled(msg)
		return v, nil

	case messages.HistoryChanged:
		if msg.Store == domain.StoreSearch {
			v.input.RefreshSuggestions()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc cancels any running search and goes back to menu
	if msg.Type == tea.KeyEsc {
		v.cancelSearch()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.startSearch(v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.Open):
		return v, v.openSelected()
	case keymap.Matches(msg.String(), v.keymap.Favorite):
		return v, v.toggleSelected()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}
	return v, nil
}

// startSearch launches a search in the background.
func (v *View) startSearch(keyword string) tea.Cmd {
	if keyword == "" {
		return nil
	}
	if v.searchService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchService} }
	}

	v.cancelSearch()
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.seq++

	v.err = nil
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("")

	search, root, opts, seq := v.searchService, v.root, v.opts, v.seq
	return func() tea.Msg {
		report, err := search.Search(ctx, root, keyword, opts)
		return messages.SearchCompleted{Seq: seq, Report: report, Err: err}
	}
}

func (v *View) cancelSearch() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// handleSearchCompleted processes a search report.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq || errors.Is(msg.Err, context.Canceled) {
		return
	}
	v.cancelSearch()

	if msg.Err != nil {
		v.setError(msg.Err)
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.report = msg.Report
	v.list.SetResults(msg.Report.Matches)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCounts(len(msg.Report.Matches), len(msg.Report.Skipped))
	v.statusbar.SetMessage("")
	if len(msg.Report.Warnings) > 0 {
		v.statusbar.SetMessage(msg.Report.Warnings[0])
	}
}

func (v *View) openSelected() tea.Cmd {
	match := v.list.SelectedResult()
	if match == nil {
		return nil
	}
	if v.actionService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoActionService} }
	}

	actions, ctx, m := v.actionService, v.ctx, *match
	return func() tea.Msg {
		return messages.FileOpened{Path: m.FilePath, Err: actions.OpenMatch(ctx, m)}
	}
}

func (v *View) toggleSelected() tea.Cmd {
	match := v.list.SelectedResult()
	if match == nil {
		return nil
	}
	if v.actionService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoActionService} }
	}

	actions, ctx, m := v.actionService, v.ctx, *match
	return func() tea.Msg {
		added, err := actions.ToggleFavorite(ctx, m)
		return messages.FavoriteToggled{Path: m.FilePath, Added: added, Err: err}
	}
}

func (v *View) handleFileOpened(msg messages.FileOpened) {
	name := filepath.Base(msg.Path)
	switch {
	case msg.Err == nil:
		v.statusbar.SetMessage("Opened " + name)
	case errors.Is(msg.Err, domain.ErrPersistenceSave):
		v.statusbar.SetMessage("Opened " + name + " (history not saved)")
	default:
		v.statusbar.SetMessage("Open failed: " + msg.Err.Error())
	}
}

func (v *View) handleFavoriteToggled(msg messages.FavoriteToggled) {
	name := filepath.Base(msg.Path)
	if msg.Err != nil && !errors.Is(msg.Err, domain.ErrPersistenceSave) {
		v.statusbar.SetMessage("Favorite failed: " + msg.Err.Error())
		return
	}
	text := "Removed " + name + " from favorites"
	if msg.Added {
		text = "Added " + name + " to favorites"
	}
	if msg.Err != nil {
		text += " (not saved)"
	}
	v.statusbar.SetMessage(text)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("pdfseek") + "  " + v.styles.Muted.Render(v.root)
	sections = append(sections, header, "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // Reserve space for header, input, suggestions, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current keyword.
func (v *View) Query() string {
	return v.input.Value()
}

// Report returns the last completed search report, or nil.
func (v *View) Report() *domain.SearchReport {
	return v.report
}

// Results returns the current matches.
func (v *View) Results() []domain.MatchRecord {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected match.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.cancelSearch()
	v.seq++
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.report = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
