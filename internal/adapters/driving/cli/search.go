package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// watchDebounce is how long the tree must be quiet before a re-run.
var watchDebounce = 500 * time.Millisecond

var (
	searchJSON      bool
	searchWorkers   int
	searchWatch     bool
	searchNoHistory bool
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword> [dir]",
	Short: "Search PDFs for a keyword",
	Long: `Scans every PDF under dir (default: current directory) for keyword.
Matching is case-insensitive. Each matching file is listed once, with up
to two words either side of the first occurrence.

With --watch the search re-runs whenever a PDF under dir changes.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchWorkers, "workers", "w", 0, "documents searched concurrently (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchWatch, "watch", false, "re-run the search when PDFs change")
	searchCmd.Flags().BoolVar(&searchNoHistory, "no-history", false, "do not record the keyword in search history")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}

	keyword := args[0]
	root := "."
	if len(args) > 1 {
		root = args[1]
	}

	ctx := cmd.Context()
	opts := domain.SearchOptions{
		Workers:     searchWorkers,
		SkipHidden:  skipHiddenSetting(),
		SkipHistory: searchNoHistory,
	}

	if err := searchOnce(ctx, cmd, root, keyword, opts); err != nil {
		return err
	}
	if !searchWatch {
		return nil
	}

	// Re-runs are not new searches as far as history is concerned.
	opts.SkipHistory = true
	return watchAndSearch(ctx, cmd, root, keyword, opts)
}

func searchOnce(ctx context.Context, cmd *cobra.Command, root, keyword string, opts domain.SearchOptions) error {
	report, err := searchService.Search(ctx, root, keyword, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for _, w := range report.Warnings {
		cmd.PrintErrln("warning:", w)
	}

	if searchJSON {
		return outputSearchJSON(cmd, report)
	}
	outputSearchText(cmd, report)
	return nil
}

func watchAndSearch(ctx context.Context, cmd *cobra.Command, root, keyword string, opts domain.SearchOptions) error {
	changes, err := searchService.Watch(ctx, root)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", root)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("%s: %s", change.Kind, change.Path)
			timer.Reset(watchDebounce)
		case <-timer.C:
			cmd.Println()
			if err := searchOnce(ctx, cmd, root, keyword, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func skipHiddenSetting() bool {
	if settingsService == nil {
		return false
	}
	settings, err := settingsService.Get()
	if err != nil {
		return false
	}
	return settings.Search.SkipHidden
}

func outputSearchJSON(cmd *cobra.Command, report *domain.SearchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, report *domain.SearchReport) {
	if len(report.Matches) == 0 {
		cmd.Println("No matches found.")
	} else {
		cmd.Printf("Matches for %q:\n\n", report.Keyword)
		for i, m := range report.Matches {
			// Format: [N] name (page P)
			cmd.Printf("  [%d] %s (page %d)\n", i+1, m.FileName, m.Page)
			cmd.Printf("      %s\n", m.Snippet())
			if logger.IsVerbose() {
				cmd.Printf("      %s\n", m.FilePath)
			}
		}
		cmd.Println()
	}

	cmd.Printf("%d of %d documents matched", len(report.Matches), report.Scanned)
	if n := len(report.Skipped); n > 0 {
		cmd.Printf(", %d skipped", n)
	}
	cmd.Println()

	if logger.IsVerbose() {
		for _, s := range report.Skipped {
			cmd.Printf("  skipped %s: %s\n", s.Path, s.Reason)
		}
	}
}
