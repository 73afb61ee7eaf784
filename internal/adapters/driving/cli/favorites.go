package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite files",
	RunE:    runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite files",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Mark a file as favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Unmark a favorite file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all favorites",
	Args:  cobra.NoArgs,
	RunE:  clearStore(domain.StoreFavorites),
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}

	favs := historyService.Favorites()
	if len(favs) == 0 {
		cmd.Println("No favorites.")
		return nil
	}
	for i, fav := range favs {
		cmd.Printf("  %2d. %s\n", i+1, fav.Path)
		if fav.Match != nil {
			cmd.Printf("      page %d: %s\n", fav.Match.Page, fav.Match.Snippet())
		}
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	if err := historyService.AddFavorite(cmd.Context(), args[0], nil); err != nil {
		if !errors.Is(err, domain.ErrPersistenceSave) {
			return fmt.Errorf("add favorite: %w", err)
		}
		printWarning(cmd, err)
	}
	cmd.Printf("Added %s to favorites.\n", args[0])
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	if err := historyService.RemoveFavorite(cmd.Context(), args[0]); err != nil {
		if !errors.Is(err, domain.ErrPersistenceSave) {
			return fmt.Errorf("remove favorite: %w", err)
		}
		printWarning(cmd, err)
	}
	cmd.Printf("Removed %s from favorites.\n", args[0])
	return nil
}
