package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage search history",
	Long: `Past search keywords, most recent first. At most ten are kept and
each keyword is stored once regardless of case.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historySuggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "List past searches starting with prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySuggest,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear search history",
	Args:  cobra.NoArgs,
	RunE:  clearStore(domain.StoreSearch),
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage recently opened files",
	RunE:  runRecentList,
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently opened files",
	Args:  cobra.NoArgs,
	RunE:  runRecentList,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear recently opened files",
	Args:  cobra.NoArgs,
	RunE:  clearStore(domain.StoreRecent),
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySuggestCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)

	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	printList(cmd, historyService.Searches(), "No search history.")
	return nil
}

func runHistorySuggest(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	printList(cmd, historyService.Suggest(args[0]), "No suggestions.")
	return nil
}

func runRecentList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryNotConfigured
	}
	printList(cmd, historyService.Recent(), "No recent files.")
	return nil
}

func clearStore(store domain.StoreName) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if historyService == nil {
			return errHistoryNotConfigured
		}
		if err := historyService.Clear(cmd.Context(), store); err != nil {
			return fmt.Errorf("clear %s: %w", store, err)
		}
		cmd.Printf("Cleared %s history.\n", store)
		return nil
	}
}

func printList(cmd *cobra.Command, items []string, empty string) {
	if len(items) == 0 {
		cmd.Println(empty)
		return
	}
	for i, item := range items {
		cmd.Printf("  %2d. %s\n", i+1, item)
	}
}
