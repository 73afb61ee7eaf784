// Package menu is the TUI start screen.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. An item without a View quits.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View lists the screens reachable from the start screen. Items can be
// picked with the arrows and enter or directly by their number.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	root     string
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView builds the menu for searches under root.
func NewView(s *styles.Styles, km *keymap.KeyMap, root string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		root:   root,
		items: []Item{
			{Label: "Search", Hint: "find PDFs containing a keyword", View: messages.ViewSearch},
			{Label: "History", Hint: "past searches, recent files, favorites", View: messages.ViewHistory},
			{Label: "Help", Hint: "keybindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or picks an item.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.selected = max(0, v.selected-1)
		case keymap.Matches(k, v.keymap.Down):
			v.selected = min(len(v.items)-1, v.selected+1)
		case msg.Type == tea.KeyEnter:
			return v, v.choose(v.selected)
		case keymap.Matches(k, v.keymap.Quit):
			return v, tea.Quit
		default:
			if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(v.items) {
				v.selected = n - 1
				return v, v.choose(v.selected)
			}
		}
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	rows := make([]string, 0, len(v.items))
	for i, item := range v.items {
		cursor, label := "  ", v.styles.Normal
		if i == v.selected {
			cursor, label = "> ", v.styles.Subtitle
		}
		row := fmt.Sprintf("%s%d. %s", cursor, i+1, label.Render(fmt.Sprintf("%-9s", item.Label)))
		if item.Hint != "" {
			row += v.styles.Muted.Render(item.Hint)
		}
		rows = append(rows, row)
	}

	footer := v.styles.Help.Render(strings.Join([]string{
		"[" + v.keymap.Up.Help().Key + "/" + v.keymap.Down.Help().Key + "] move",
		"[1-" + strconv.Itoa(len(v.items)) + "] jump",
		"[enter] select",
		"[" + v.keymap.Quit.Help().Key + "] " + v.keymap.Quit.Help().Desc,
	}, "  "))

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("pdfseek"),
		"",
		v.styles.Muted.Render("Searching PDFs under "+v.root),
		"",
		strings.Join(rows, "\n"),
		"",
		footer,
	)
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}
