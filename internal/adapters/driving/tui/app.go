package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// root is the directory searches run in.
	root string

	styles *styles.Styles

	menuView    *menu.View
	searchView  *search.View
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application searching under root.
func NewApp(ports *Ports, root string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		root:        root,
		styles:      s,
		menuView:    menu.NewView(s, km, root),
		searchView:  search.NewView(s, km, root, ports.Search, ports.ResultAction, ports.History),
		historyView: history.NewView(s, km, ports.History, ports.ResultAction),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// WithOptions sets the options used for every search.
func (a *App) WithOptions(opts domain.SearchOptions) *App {
	a.searchView.WithOptions(opts)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pdfseek - "+a.root),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.SearchRequested:
		// Re-running a past search from history lands on the search view.
		a.currentView = messages.ViewSearch
		a.searchView.Reset()
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.HistoryChanged:
		a.searchView, _ = a.searchView.Update(msg)
		a.historyView, _ = a.historyView.Update(msg)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward everything else to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Search:
  (type)      Enter keyword
  tab         Accept suggestion from history
  enter       Search
  ↑/↓, j/k    Navigate matches
  o, enter    Open document
  f           Toggle favorite
  n           New search

History:
  tab         Next list (searches, recent, favorites)
  enter       Re-run search or open file
  f           Toggle favorite
  c           Clear current list

[esc] back to menu`
}

// Run starts the TUI and blocks until it exits. History changes made
// anywhere are forwarded to the views while it runs.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))

	// Subscribers run under the history lock; Send must not block it.
	unsubscribe := a.ports.History.Subscribe(func(store domain.StoreName) {
		go p.Send(messages.HistoryChanged{Store: store})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
