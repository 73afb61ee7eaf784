package driven

import (
	"context"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
)

// DocumentTree locates PDF documents on disk.
type DocumentTree interface {
	// Enumerate returns the absolute paths of every PDF under root,
	// recursively, in lexicographic order. A root that is missing, not a
	// directory or unreadable yields domain.ErrInvalidDirectory.
	Enumerate(ctx context.Context, root string, opts domain.EnumerateOptions) ([]string, error)

	// Watch reports PDF changes under root until ctx is cancelled,
	// at which point the channel is closed.
	Watch(ctx context.Context, root string) (<-chan domain.TreeChange, error)
}
