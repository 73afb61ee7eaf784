package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the driving ports the commands call into.
type Services struct {
	Search   driving.SearchService
	History  driving.HistoryService
	Actions  driving.ResultActionService
	Settings driving.SettingsService

	// Warnings are printed once before the command runs.
	Warnings []string

	// Close releases resources held by the wiring. May be nil.
	Close func() error
}

// RootOptions carries global flags to the bootstrap function.
type RootOptions struct {
	ConfigDir string
	Verbose   bool

	// Command is the name of the command about to run.
	Command string
}

// BootstrapFunc builds the services for a command invocation.
type BootstrapFunc func(opts RootOptions) (*Services, error)

var (
	searchService   driving.SearchService
	historyService  driving.HistoryService
	actionService   driving.ResultActionService
	settingsService driving.SettingsService

	bootstrap   BootstrapFunc
	closeWiring func() error
	rootOpts    RootOptions
)

var rootCmd = &cobra.Command{
	Use:   "pdfseek",
	Short: "Find the PDFs that mention a keyword",
	Long: `pdfseek scans a directory tree for PDF documents containing a keyword
and shows the words around the first match in each file.

Searches, recently opened files and favorites are remembered across runs.`,
	SilenceUsage:       true,
	PersistentPreRunE:  runBootstrap,
	PersistentPostRunE: runTeardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigDir, "config-dir", "",
		"configuration directory (default ~/.pdfseek)")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function used to build services once flags are parsed.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	searchService = s.Search
	historyService = s.History
	actionService = s.Actions
	settingsService = s.Settings
	closeWiring = s.Close
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on interrupt.
// Command output goes to stdout; cobra's Print helpers default to stderr.
func ExecuteContext(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return run(ctx)
}

// run executes the root command and releases wiring even when the command
// fails; cobra skips PersistentPostRunE after a RunE error.
func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := runTeardown(nil, nil); cerr != nil && err == nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	return err
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	opts := rootOpts
	opts.Command = cmd.Name()
	services, err := bootstrap(opts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)

	for _, w := range services.Warnings {
		cmd.PrintErrln("warning:", w)
	}
	return nil
}

func runTeardown(_ *cobra.Command, _ []string) error {
	if closeWiring == nil {
		return nil
	}
	err := closeWiring()
	closeWiring = nil
	return err
}

var (
	errSearchNotConfigured   = errors.New("search service not configured")
	errHistoryNotConfigured  = errors.New("history service not configured")
	errActionsNotConfigured  = errors.New("result action service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
)

// printWarning reports a non-fatal failure to stderr.
func printWarning(cmd *cobra.Command, err error) {
	cmd.PrintErrln("warning:", err)
}
