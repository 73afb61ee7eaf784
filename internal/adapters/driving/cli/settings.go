package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys:
  search.workers       documents searched concurrently (0 = one per CPU)
  search.skip_hidden   skip dot-prefixed files and directories
  pdf.pdftotext_path   pdftotext binary name or path
  storage.backend      history backend: sqlite or toml
  storage.data_dir     history directory (default <config-dir>/data)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Workers: %s\n", formatWorkers(settings.Search.Workers))
	cmd.Printf("  Skip hidden: %s\n", formatBool(settings.Search.SkipHidden))
	cmd.Println()

	cmd.Println("[PDF]")
	cmd.Printf("  pdftotext: %s\n", settings.PDF.PdftotextPath)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data directory: %s\n", dataDir)

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if key == "storage.backend" {
			return fmt.Errorf("failed to set %s (valid: %s): %w", key, strings.Join(backendNames(), ", "), err)
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)

	if key == "storage.backend" || key == "storage.data_dir" {
		cmd.Println("History already stored by the previous backend is not migrated.")
	}
	return nil
}

func formatWorkers(n int) string {
	if n <= 0 {
		return "auto (one per CPU)"
	}
	return fmt.Sprintf("%d", n)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// backendNames lists valid storage backends for help output.
func backendNames() []string {
	backends := domain.AllStorageBackends()
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.String()
	}
	return names
}
