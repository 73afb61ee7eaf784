package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdfseek/internal/adapters/driving/tui"
	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runApp starts the TUI. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [dir]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for pdfseek.

Searches run under dir (default: current directory). Search history
suggestions, recently opened files and favorites are available from the
History screen.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Open
  Tab      - Accept suggestion / Next history list
  f        - Toggle favorite
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNotTerminal
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	ports := tui.NewPorts(searchService, historyService, actionService)
	app, err := tui.NewApp(ports, root)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context()).
		WithOptions(domain.SearchOptions{SkipHidden: skipHiddenSetting()})

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
