package driving

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// SearchService scans a directory tree for PDFs containing a keyword.
type SearchService interface {
	// Search returns one MatchRecord per matching document in enumeration
	// order. Only an invalid root, invalid input or cancellation fail the call;
	// unreadable documents are reported in SearchReport.Skipped.
	Search(ctx context.Context, root, keyword string, opts domain.SearchOptions) (*domain.SearchReport, error)

	// Watch reports PDF changes under root until ctx is done.
	Watch(ctx context.Context, root string) (<-chan domain.TreeChange, error)
}
