// Package history provides the history view for the TUI: past searches,
// recently opened files and favorites.
package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
)

// ErrNoHistoryService indicates that no history service was provided.
var ErrNoHistoryService = errors.New("history service is required")

// tab describes one history list.
type tab struct {
	title string
	store domain.StoreName
}

var tabs = []tab{
	{title: "Searches", store: domain.StoreSearch},
	{title: "Recent", store: domain.StoreRecent},
	{title: "Favorites", store: domain.StoreFavorites},
}

// entry is one rendered row.
type entry struct {
	value  string
	detail string
}

// View shows one history list at a time.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	historyService driving.HistoryService
	actionService  driving.ResultActionService
	ctx            context.Context

	active   int
	entries  []entry
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new history view. actionService may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	historyService driving.HistoryService,
	actionService driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.HistoryHelp())

	return &View{
		styles:         s,
		keymap:         km,
		statusbar:      bar,
		historyService: historyService,
		actionService:  actionService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current snapshot.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return nil
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HistoryChanged:
		if msg.Store == v.Store() {
			v.refresh()
		}
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrPersistenceSave) {
			v.statusbar.SetMessage("Clear failed: " + msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetMessage(fmt.Sprintf("Cleared %s", msg.Store))
		v.refresh()
		return v, nil

	case messages.FileOpened:
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrPersistenceSave) {
			v.statusbar.SetMessage("Open failed: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Opened " + filepath.Base(msg.Path))
		}
		v.refresh()
		return v, nil

	case messages.FavoriteToggled:
		switch {
		case msg.Err != nil && !errors.Is(msg.Err, domain.ErrPersistenceSave):
			v.statusbar.SetMessage("Favorite failed: " + msg.Err.Error())
		case msg.Added:
			v.statusbar.SetMessage("Added " + filepath.Base(msg.Path) + " to favorites")
		default:
			v.statusbar.SetMessage("Removed " + filepath.Base(msg.Path) + " from favorites")
		}
		v.refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	if msg.Type == tea.KeyShiftTab {
		v.switchTab(len(tabs) - 1)
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.NextTab):
		v.switchTab(1)
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case keymap.Matches(msg.String(), v.keymap.Open):
		return v, v.activateSelected()
	case keymap.Matches(msg.String(), v.keymap.Favorite):
		return v, v.toggleSelected()
	case keymap.Matches(msg.String(), v.keymap.Clear):
		return v, v.clearActive()
	}
	return v, nil
}

func (v *View) switchTab(step int) {
	v.active = (v.active + step) % len(tabs)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.refresh()
}

// refresh takes a fresh snapshot of the active store.
func (v *View) refresh() {
	v.entries = nil
	if v.historyService != nil {
		switch v.Store() {
		case domain.StoreSearch:
			for _, term := range v.historyService.Searches() {
				v.entries = append(v.entries, entry{value: term})
			}
		case domain.StoreRecent:
			for _, path := range v.historyService.Recent() {
				v.entries = append(v.entries, entry{value: path})
			}
		case domain.StoreFavorites:
			for _, fav := range v.historyService.Favorites() {
				e := entry{value: fav.Path}
				if fav.Match != nil {
					e.detail = fmt.Sprintf("page %d: %s", fav.Match.Page, fav.Match.Snippet())
				}
				v.entries = append(v.entries, e)
			}
		}
	}
	v.selected = min(v.selected, max(len(v.entries)-1, 0))
}

// activateSelected re-runs a past search or opens a file.
func (v *View) activateSelected() tea.Cmd {
	e, ok := v.selectedEntry()
	if !ok {
		return nil
	}

	if v.Store() == domain.StoreSearch {
		keyword := e.value
		return func() tea.Msg { return messages.SearchRequested{Keyword: keyword} }
	}

	if v.actionService == nil {
		return nil
	}
	actions, ctx, path := v.actionService, v.ctx, e.value
	return func() tea.Msg {
		return messages.FileOpened{Path: path, Err: actions.OpenFile(ctx, path)}
	}
}

func (v *View) toggleSelected() tea.Cmd {
	e, ok := v.selectedEntry()
	if !ok || v.Store() == domain.StoreSearch {
		return nil
	}

	history, ctx, path := v.historyService, v.ctx, e.value
	return func() tea.Msg {
		if history.IsFavorite(path) {
			return messages.FavoriteToggled{Path: path, Added: false, Err: history.RemoveFavorite(ctx, path)}
		}
		return messages.FavoriteToggled{Path: path, Added: true, Err: history.AddFavorite(ctx, path, nil)}
	}
}

func (v *View) clearActive() tea.Cmd {
	if v.historyService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoHistoryService} }
	}

	history, ctx, store := v.historyService, v.ctx, v.Store()
	return func() tea.Msg {
		return messages.HistoryCleared{Store: store, Err: history.Clear(ctx, store)}
	}
}

func (v *View) selectedEntry() (entry, bool) {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return entry{}, false
	}
	return v.entries[v.selected], true
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("History"), "", v.renderTabs(), ""}
	sections = append(sections, v.renderEntries(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTabs() string {
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if i == v.active {
			rendered[i] = v.styles.ActiveTab.Render(t.title)
		} else {
			rendered[i] = v.styles.Tab.Render(t.title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *View) renderEntries() string {
	if len(v.entries) == 0 {
		return v.styles.Muted.Render("Nothing here yet")
	}

	lines := make([]string, 0, len(v.entries)*2)
	for i, e := range v.entries {
		indicator := "  "
		style := v.styles.Normal
		if i == v.selected {
			indicator = "> "
			style = v.styles.Selected
		}

		star := ""
		if v.Store() == domain.StoreRecent && v.historyService.IsFavorite(e.value) {
			star = v.styles.Favorite.Render(" ★")
		}

		lines = append(lines, fmt.Sprintf("%2d. ", i+1)+style.Render(indicator+e.value)+star)
		if e.detail != "" {
			lines = append(lines, "      "+v.styles.Muted.Render(e.detail))
		}
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Store returns the store shown by the active tab.
func (v *View) Store() domain.StoreName {
	return tabs[v.active].store
}

// Entries returns the values in the active list.
func (v *View) Entries() []string {
	values := make([]string, len(v.entries))
	for i, e := range v.entries {
		values[i] = e.value
	}
	return values
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
