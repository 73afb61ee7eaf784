package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// searchRecorder receives keywords of completed searches.
type searchRecorder interface {
	RecordSearch(ctx context.Context, keyword string) error
}

// documentOutcome is the result of searching one candidate.
type documentOutcome struct {
	match   *domain.MatchRecord
	skipped *domain.SkippedDocument
}

// SearchService scans PDF trees for a keyword.
type SearchService struct {
	tree     driven.DocumentTree
	source   driven.DocumentTextSource
	recorder searchRecorder
	workers  int
}

// NewSearchService creates a new search service.
// The recorder parameter is optional (can be nil).
func NewSearchService(
	tree driven.DocumentTree,
	source driven.DocumentTextSource,
	recorder searchRecorder,
) *SearchService {
	return &SearchService{
		tree:     tree,
		source:   source,
		recorder: recorder,
	}
}

// SetDefaultWorkers sets the worker count used when SearchOptions.Workers is unset.
func (s *SearchService) SetDefaultWorkers(n int) {
	s.workers = n
}

// Search scans every PDF under root for keyword.
func (s *SearchService) Search(
	ctx context.Context, root, keyword string, opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	logger.Section("Search Execution")

	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: keyword is empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: no directory given", domain.ErrInvalidDirectory)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, root, err)
	}

	start := time.Now()
	report := &domain.SearchReport{
		ID:      uuid.NewString(),
		Root:    absRoot,
		Keyword: keyword,
		Matches: []domain.MatchRecord{},
		Skipped: []domain.SkippedDocument{},
	}
	logger.Debug("Search %s: keyword=%q root=%s", report.ID, keyword, absRoot)

	paths, err := s.tree.Enumerate(ctx, absRoot, domain.EnumerateOptions{SkipHidden: opts.SkipHidden})
	if err != nil {
		return nil, err
	}
	logger.Debug("Found %d candidate documents", len(paths))

	outcomes, err := s.scan(ctx, paths, keyword, s.workerCount(opts))
	if err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		switch {
		case o.match != nil:
			report.Matches = append(report.Matches, *o.match)
		case o.skipped != nil:
			report.Skipped = append(report.Skipped, *o.skipped)
		}
	}
	report.Scanned = len(paths)
	report.Duration = time.Since(start)

	logger.Info("Search %s: %d matches, %d skipped, %d scanned in %s",
		report.ID, len(report.Matches), len(report.Skipped), report.Scanned, report.Duration)

	if !opts.SkipHistory && s.recorder != nil {
		if err := s.recorder.RecordSearch(ctx, keyword); err != nil {
			logger.Warn("Failed to record search history: %v", err)
			report.Warnings = append(report.Warnings, err.Error())
		}
	}

	return report, nil
}

// Watch reports PDF changes under root until ctx is done.
func (s *SearchService) Watch(ctx context.Context, root string) (<-chan domain.TreeChange, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: no directory given", domain.ErrInvalidDirectory)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDirectory, root, err)
	}

	changes, err := s.tree.Watch(ctx, absRoot)
	if err != nil {
		return nil, err
	}
	logger.Debug("Watching %s for PDF changes", absRoot)
	return changes, nil
}

// scan searches paths concurrently. Outcomes are index-aligned with paths.
func (s *SearchService) scan(
	ctx context.Context, paths []string, keyword string, workers int,
) ([]documentOutcome, error) {
	outcomes := make([]documentOutcome, len(paths))

	// Started documents run to completion even if ctx is cancelled.
	docCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = s.searchDocument(docCtx, path, keyword)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("Search cancelled: %v", err)
		return nil, fmt.Errorf("search cancelled: %w", err)
	}
	return outcomes, nil
}

// searchDocument checks pages in order and returns at most one match.
func (s *SearchService) searchDocument(ctx context.Context, path, keyword string) documentOutcome {
	handle, err := s.source.Open(ctx, path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return documentOutcome{skipped: &domain.SkippedDocument{Path: path, Reason: err.Error()}}
	}
	defer func() {
		if cerr := handle.Close(); cerr != nil {
			logger.Debug("Close %s: %v", path, cerr)
		}
	}()

	for i := range handle.PageCount() {
		text, err := handle.PageText(i)
		if err != nil {
			if !errors.Is(err, domain.ErrDocumentOpen) {
				err = fmt.Errorf("%w: page %d: %v", domain.ErrCorrupt, i+1, err)
			}
			logger.Warn("Skipping %s: %v", path, err)
			return documentOutcome{skipped: &domain.SkippedDocument{Path: path, Reason: err.Error()}}
		}

		if !containsFold(text, keyword) {
			continue
		}

		window, ok := ExtractContext(text, keyword)
		if !ok {
			logger.Debug("%s page %d matched without sentence context", path, i+1)
		}
		match := domain.NewMatchRecord(path, keyword, i+1, window)
		logger.Debug("Match in %s on page %d", path, i+1)
		return documentOutcome{match: &match}
	}

	return documentOutcome{}
}

// workerCount resolves the pool size.
func (s *SearchService) workerCount(opts domain.SearchOptions) int {
	switch {
	case opts.Workers > 0:
		return opts.Workers
	case s.workers > 0:
		return s.workers
	default:
		return max(1, runtime.NumCPU())
	}
}
