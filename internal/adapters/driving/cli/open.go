package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

var openFavorite bool

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a file in the default viewer",
	Long: `Opens the file with the system's default application and records it in
recent files. A file that cannot be opened is not recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openFavorite, "favorite", false, "also add the file to favorites")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errActionsNotConfigured
	}

	path := args[0]
	if err := actionService.OpenFile(cmd.Context(), path); err != nil {
		if !errors.Is(err, domain.ErrPersistenceSave) {
			return fmt.Errorf("open %s: %w", path, err)
		}
		printWarning(cmd, err)
	}

	if openFavorite {
		if historyService == nil {
			return errHistoryNotConfigured
		}
		if err := historyService.AddFavorite(cmd.Context(), path, nil); err != nil {
			if !errors.Is(err, domain.ErrPersistenceSave) {
				return fmt.Errorf("add favorite: %w", err)
			}
			printWarning(cmd, err)
		}
	}
	return nil
}
