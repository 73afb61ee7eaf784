package driven

import "context"

// DocumentTextSource opens documents for page-by-page text access.
// Open failures are per-document and wrap domain.ErrEncrypted,
// domain.ErrCorrupt or domain.ErrUnreadable.
type DocumentTextSource interface {
	// Open prepares the document at path for reading.
	// The caller owns the handle and must Close it.
	Open(ctx context.Context, path string) (DocumentHandle, error)
}

// DocumentHandle is an open document.
type DocumentHandle interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the text of the zero-based page index.
	PageText(index int) (string, error)

	// Close releases the document.
	Close() error
}
