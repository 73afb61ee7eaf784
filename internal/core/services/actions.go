package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driving"
	"github.com/custodia-labs/pdfseek/internal/logger"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	opener  driven.FileOpener
	history driving.HistoryService
}

// NewResultActionService creates a new result action service.
func NewResultActionService(opener driven.FileOpener, history driving.HistoryService) *ResultActionService {
	return &ResultActionService{
		opener:  opener,
		history: history,
	}
}

// OpenFile opens path in the default application. Only a successful open
// is recorded in recent files.
func (s *ResultActionService) OpenFile(ctx context.Context, path string) error {
	path, err := normalisePath(path)
	if err != nil {
		return err
	}

	if err := s.opener.Open(ctx, path); err != nil {
		logger.Warn("Failed to open %s: %v", path, err)
		if !errors.Is(err, domain.ErrFileOpen) {
			return errors.Join(domain.ErrFileOpen, err)
		}
		return err
	}
	logger.Debug("Opened %s", path)

	return s.history.RecordOpened(ctx, path)
}

// OpenMatch opens the match's document.
func (s *ResultActionService) OpenMatch(ctx context.Context, match domain.MatchRecord) error {
	return s.OpenFile(ctx, match.FilePath)
}

// ToggleFavorite flips the favorite state of the match's document.
func (s *ResultActionService) ToggleFavorite(ctx context.Context, match domain.MatchRecord) (bool, error) {
	if s.history.IsFavorite(match.FilePath) {
		return false, s.history.RemoveFavorite(ctx, match.FilePath)
	}
	return true, s.history.AddFavorite(ctx, match.FilePath, &match)
}
